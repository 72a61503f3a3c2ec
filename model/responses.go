package model

import (
	domain "poi-radar/internal/domain/model"
)

// ImportResponse 取り込み系エンドポイントのレスポンス
type ImportResponse struct {
	Source        domain.POISource `json:"source"`
	ImportedCount int              `json:"imported_count"`
}

// DeleteSourceResponse ソース別一括削除のレスポンス
type DeleteSourceResponse struct {
	Source       domain.POISource `json:"source"`
	DeletedCount int              `json:"deleted_count"`
}

// NotificationsResponse 位置更新・周辺検索のレスポンス
type NotificationsResponse struct {
	Notifications []domain.NotificationEvent `json:"notifications"`
}

// POIListResponse POI一覧のレスポンス
type POIListResponse struct {
	POIs []*domain.POI `json:"pois"`
}

// StatsResponse 統計情報のレスポンス
type StatsResponse struct {
	TotalCount   int `json:"total_count"`
	VisitedCount int `json:"visited_count"`
}

// SessionResponse セッション保存のレスポンス
type SessionResponse struct {
	SessionID string `json:"session_id"`
}
