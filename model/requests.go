package model

// ImportOverpassRequest POST /pois/import/overpass のリクエストボディ
// 緯度0（赤道）・経度0（本初子午線）は有効な座標のためrequiredは付けない
type ImportOverpassRequest struct {
	Latitude     float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" binding:"min=-180,max=180"`
	RadiusMeters int     `json:"radius_meters"`
}

// CreateManualPOIRequest POST /pois のリクエストボディ
type CreateManualPOIRequest struct {
	Name               string  `json:"name" binding:"required"`
	Description        string  `json:"description"`
	Latitude           float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude          float64 `json:"longitude" binding:"min=-180,max=180"`
	NotificationRadius int     `json:"notification_radius"`
}

// PositionUpdateRequest POST /position のリクエストボディ
// タイムスタンプ省略時はサーバー時刻を使用する
type PositionUpdateRequest struct {
	Latitude        float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude       float64 `json:"longitude" binding:"min=-180,max=180"`
	TimestampMillis int64   `json:"timestamp_millis"`
}
