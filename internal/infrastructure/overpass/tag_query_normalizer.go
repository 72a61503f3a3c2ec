package overpass

import (
	"fmt"
	"log"
	"strings"
	"time"

	"poi-radar/internal/domain/model"
)

// defaultStationName name タグがない要素のフォールバック名
const defaultStationName = "Docking Station"

// TagQueryNormalizer Overpassの要素を正規化済みPOIに変換する
// このクエリプロファイルはバイクシェアステーション専用のため、
// カテゴリは常にPUBLIC_TRANSPORT
type TagQueryNormalizer struct{}

// NewTagQueryNormalizer TagQueryNormalizerの新しいインスタンスを作成
func NewTagQueryNormalizer() *TagQueryNormalizer {
	return &TagQueryNormalizer{}
}

// Normalize は要素一覧をPOI一覧に変換する
// 座標が解決できない要素はスキップし、バッチ全体は継続する。
// IDは {source}_{type}_{elementId} の形式で決定的に生成されるため、
// 同じレスポンスを二度取り込んでも重複しない
func (n *TagQueryNormalizer) Normalize(elements []OverpassElement) []*model.POI {
	var pois []*model.POI
	for _, element := range elements {
		location, ok := resolveLocation(element)
		if !ok {
			log.Printf("⚠️ 座標のない要素をスキップ: %s/%d", element.Type, element.ID)
			continue
		}

		tags := element.Tags
		if tags == nil {
			tags = make(map[string]string)
		}

		name := tags["name"]
		if name == "" {
			name = defaultStationName
		}

		pois = append(pois, &model.POI{
			ID:                 fmt.Sprintf("%s_%s_%d", model.SourceOverpass, element.Type, element.ID),
			Name:               name,
			Description:        composeDescription(tags),
			Location:           location,
			Category:           model.CategoryPublicTransport,
			NotificationRadius: model.DefaultNotificationRadiusMeters,
			Priority:           0,
			Source:             model.SourceOverpass,
			Tags:               tags,
			IsActive:           true,
			CreatedAt:          time.Now(),
		})
	}

	return pois
}

// resolveLocation は要素の座標を解決する
// 直接のlat/lonを優先し、なければway要素などのcenterにフォールバック
func resolveLocation(element OverpassElement) (model.Location, bool) {
	if element.Lat != nil && element.Lon != nil {
		return model.Location{Latitude: *element.Lat, Longitude: *element.Lon}, true
	}
	if element.Center != nil {
		return model.Location{Latitude: element.Center.Lat, Longitude: element.Center.Lon}, true
	}
	return model.Location{}, false
}

// composeDescription はcapacityとnetworkタグから説明文を合成する（各行1項目）
func composeDescription(tags map[string]string) string {
	var lines []string
	if capacity := tags["capacity"]; capacity != "" {
		lines = append(lines, fmt.Sprintf("Capacity: %s", capacity))
	}
	if network := tags["network"]; network != "" {
		lines = append(lines, fmt.Sprintf("Network: %s", network))
	}
	return strings.Join(lines, "\n")
}
