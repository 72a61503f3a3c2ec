package model

import "time"

// PositionFix 位置情報ストリームから届く1件の測位結果
type PositionFix struct {
	Latitude  float64   `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64   `json:"longitude" validate:"required,min=-180,max=180"`
	Timestamp time.Time `json:"timestamp"`
}

// ToLatLng PositionFix を LatLng 型に変換
func (f PositionFix) ToLatLng() LatLng {
	return LatLng{Lat: f.Latitude, Lng: f.Longitude}
}
