package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"poi-radar/internal/domain/model"
	"poi-radar/internal/domain/service"
)

// GPXDocument GPXファイルのルート要素
type GPXDocument struct {
	XMLName   xml.Name   `xml:"gpx"`
	Waypoints []Waypoint `xml:"wpt"`
}

// Waypoint GPXのウェイポイント要素
// 緯度経度は属性、それ以外は任意の子要素
type Waypoint struct {
	Lat       *float64 `xml:"lat,attr"`
	Lon       *float64 `xml:"lon,attr"`
	Name      string   `xml:"name"`
	Desc      string   `xml:"desc"`
	Type      string   `xml:"type"`
	Time      string   `xml:"time"`
	Elevation *float64 `xml:"ele"`
}

// ParseWaypoints はGPXストリームを構造的にパースしてウェイポイント一覧を返す
func ParseWaypoints(r io.Reader) ([]Waypoint, error) {
	var doc GPXDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("GPXのパースに失敗: %w", err)
	}
	return doc.Waypoints, nil
}

// WaypointNormalizer GPXウェイポイントを正規化済みPOIに変換する
type WaypointNormalizer struct {
	classifier *service.CategoryClassifier
}

// NewWaypointNormalizer WaypointNormalizerの新しいインスタンスを作成
func NewWaypointNormalizer() *WaypointNormalizer {
	return &WaypointNormalizer{
		classifier: service.NewCategoryClassifier(),
	}
}

// Normalize はウェイポイント一覧をPOI一覧に変換する
// 緯度経度が欠落したレコードはスキップし、バッチ全体は継続する。
// ソース指定が無効な場合は "gpx" を使用する
func (n *WaypointNormalizer) Normalize(waypoints []Waypoint, source model.POISource) []*model.POI {
	if !source.IsValid() {
		source = model.SourceGPX
	}

	var pois []*model.POI
	for i, wpt := range waypoints {
		// 座標のないレコードは構造的に不正なのでスキップ
		if wpt.Lat == nil || wpt.Lon == nil {
			continue
		}

		name := wpt.Name
		if name == "" {
			name = fmt.Sprintf("Waypoint %d", i+1)
		}

		createdAt := time.Now()
		if wpt.Time != "" {
			if ts, err := time.Parse(time.RFC3339, wpt.Time); err == nil {
				createdAt = ts
			}
		}

		tags := make(map[string]string)
		if wpt.Type != "" {
			tags["type"] = wpt.Type
		}
		if wpt.Elevation != nil {
			tags["elevation"] = strconv.FormatFloat(*wpt.Elevation, 'f', -1, 64)
		}

		pois = append(pois, &model.POI{
			ID:          fmt.Sprintf("%s_%s", source, uuid.New().String()),
			Name:        name,
			Description: wpt.Desc,
			Location: model.Location{
				Latitude:  *wpt.Lat,
				Longitude: *wpt.Lon,
			},
			Category:           n.classifier.Classify(wpt.Type, name),
			NotificationRadius: model.DefaultNotificationRadiusMeters,
			Priority:           0,
			Source:             source,
			Tags:               tags,
			IsActive:           true,
			CreatedAt:          createdAt,
		})
	}

	return pois
}

// NormalizeReader はGPXストリームを直接POI一覧に変換する便利メソッド
func (n *WaypointNormalizer) NormalizeReader(r io.Reader, source model.POISource) ([]*model.POI, error) {
	waypoints, err := ParseWaypoints(r)
	if err != nil {
		return nil, err
	}
	return n.Normalize(waypoints, source), nil
}
