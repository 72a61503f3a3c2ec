package helper

import (
	"math"
	"sort"

	"poi-radar/internal/domain/model"
)

const earthRadiusMeters = 6371000.0

// HaversineDistanceMeters は2地点間の大円距離を計算する (メートル)
func HaversineDistanceMeters(p1, p2 model.LatLng) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lng1 := p1.Lng * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lng2 := p2.Lng * math.Pi / 180
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// HaversineDistancePOI は基準座標からPOIまでの距離を計算する (メートル)
func HaversineDistancePOI(origin model.LatLng, poi *model.POI) float64 {
	return HaversineDistanceMeters(origin, poi.ToLatLng())
}

// SortByDistanceFromLocation は基準座標からの距離でPOIスライスをソートする
func SortByDistanceFromLocation(origin model.LatLng, targets []*model.POI) {
	sort.Slice(targets, func(i, j int) bool {
		distI := HaversineDistancePOI(origin, targets[i])
		distJ := HaversineDistancePOI(origin, targets[j])
		return distI < distJ
	})
}

// FilterBySource は指定されたソースのPOIのみを抽出する
func FilterBySource(pois []*model.POI, source model.POISource) []*model.POI {
	var filtered []*model.POI
	for _, p := range pois {
		if p.Source == source {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterActive は有効なPOIのみを抽出する
func FilterActive(pois []*model.POI) []*model.POI {
	var filtered []*model.POI
	for _, p := range pois {
		if p.IsActive {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
