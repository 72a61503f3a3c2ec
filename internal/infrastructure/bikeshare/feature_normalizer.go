package bikeshare

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"poi-radar/internal/domain/model"
)

// FeatureNormalizer バイクシェアのGeoJSON FeatureCollectionを正規化済みPOIに変換する
// このソースはバイクシェア専用のため、カテゴリは常にPUBLIC_TRANSPORT
type FeatureNormalizer struct{}

// NewFeatureNormalizer FeatureNormalizerの新しいインスタンスを作成
func NewFeatureNormalizer() *FeatureNormalizer {
	return &FeatureNormalizer{}
}

// NormalizeBytes はGeoJSONペイロードを直接POI一覧に変換する
func (n *FeatureNormalizer) NormalizeBytes(data []byte) ([]*model.POI, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("GeoJSONのパースに失敗: %w", err)
	}
	return n.Normalize(fc), nil
}

// Normalize はFeatureCollectionをPOI一覧に変換する
// Pointジオメトリ以外のフィーチャは黙ってスキップする
func (n *FeatureNormalizer) Normalize(fc *geojson.FeatureCollection) []*model.POI {
	if fc == nil {
		return nil
	}

	var pois []*model.POI
	for _, feature := range fc.Features {
		if feature == nil {
			continue
		}
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			continue
		}

		// 連番は正規化されたステーション数に基づく1始まりの番号。
		// Pointでないフィーチャはステーションではないため番号を消費しない
		// （GPXのウェイポイントと異なりソース内の行位置に意味がない）
		index := len(pois) + 1
		priority := priorityFromCapacity(feature.Properties)

		pois = append(pois, &model.POI{
			ID:                 stationID(feature),
			Name:               stationName(feature.Properties, index),
			Description:        composeDescription(feature.Properties),
			Location:           model.Location{Latitude: point.Lat(), Longitude: point.Lon()},
			Category:           model.CategoryPublicTransport,
			NotificationRadius: radiusFromPriority(priority),
			Priority:           priority,
			Source:             model.SourceBikeShareGeoJSON,
			Tags:               stationTags(feature.Properties),
			IsActive:           true,
			CreatedAt:          time.Now(),
		})
	}

	return pois
}

// stationID はフィーチャのIDから決定的なPOI IDを生成する
// ソース由来IDがない場合のみUUIDを採番する
func stationID(feature *geojson.Feature) string {
	if feature.ID != nil {
		return fmt.Sprintf("%s_%v", model.SourceBikeShareGeoJSON, feature.ID)
	}
	if sid := propertyString(feature.Properties, "station_id"); sid != "" {
		return fmt.Sprintf("%s_%s", model.SourceBikeShareGeoJSON, sid)
	}
	return fmt.Sprintf("%s_%s", model.SourceBikeShareGeoJSON, uuid.New().String())
}

func stationName(props geojson.Properties, index int) string {
	if name := propertyString(props, "name"); name != "" {
		return name
	}
	return fmt.Sprintf("Bike Station #%d", index)
}

// composeDescription は運営者・ドック数・ネットワークから説明文を合成する
// 全て欠落している場合は汎用ラベルにフォールバック
func composeDescription(props geojson.Properties) string {
	var parts []string
	if operator := propertyString(props, "operator"); operator != "" {
		parts = append(parts, operator)
	}
	if capacity, ok := capacityValue(props); ok {
		parts = append(parts, fmt.Sprintf("%d docks", capacity))
	}
	if network := propertyString(props, "network"); network != "" {
		parts = append(parts, network)
	}
	if len(parts) == 0 {
		return "Bike sharing station"
	}
	return strings.Join(parts, ", ")
}

// priorityFromCapacity は容量から優先度を導出する（40以上→2、20以上→1、それ以外→0）
func priorityFromCapacity(props geojson.Properties) int {
	capacity, ok := capacityValue(props)
	if !ok {
		return 0
	}
	switch {
	case capacity >= 40:
		return 2
	case capacity >= 20:
		return 1
	default:
		return 0
	}
}

// radiusFromPriority は優先度から通知半径を導出する（2→75m、1→50m、それ以外→40m）
func radiusFromPriority(priority int) int {
	switch priority {
	case 2:
		return 75
	case 1:
		return model.DefaultNotificationRadiusMeters
	default:
		return 40
	}
}

func stationTags(props geojson.Properties) map[string]string {
	tags := make(map[string]string)
	for _, key := range []string{"capacity", "operator", "network", "amenity", "bicycle_parking"} {
		if value := propertyString(props, key); value != "" {
			tags[key] = value
		}
	}
	return tags
}

// capacityValue は容量プロパティを数値として取り出す（数値化できない場合はfalse）
func capacityValue(props geojson.Properties) (int, bool) {
	raw, ok := props["capacity"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// propertyString はプロパティを文字列として取り出す（数値は文字列化）
func propertyString(props geojson.Properties, key string) string {
	raw, ok := props[key]
	if !ok {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}
