package model

import "time"

// LatLng 緯度経度を表す基本的な型（距離計算などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location 検証タグ付きの位置情報
type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// ToLatLng Location を LatLng 型に変換
func (l Location) ToLatLng() LatLng {
	return LatLng{Lat: l.Latitude, Lng: l.Longitude}
}

// IsValid 緯度経度が有効範囲内かチェック
func (l Location) IsValid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// DefaultNotificationRadiusMeters 通知半径のデフォルト値（メートル）
const DefaultNotificationRadiusMeters = 50

// POI Point of Interest（興味のあるスポット）を表す正規化済みモデル
// 3つの取り込みソース（GPX / バイクシェアGeoJSON / Overpass）を
// この1つのスキーマに正規化する
type POI struct {
	ID                 string            `json:"id" db:"id"`                                       // ユニークなスポットID（ソース由来IDから決定的に生成）
	Name               string            `json:"name" db:"name"`                                   // スポット名（空にならない、フォールバックあり）
	Description        string            `json:"description,omitempty" db:"description"`           // 補足説明（容量・運営者などから合成）
	Location           Location          `json:"location" db:"location"`                           // 位置情報
	Category           Category          `json:"category" db:"category"`                           // カテゴリ（必ず解決済み、フォールバックはUNKNOWN）
	NotificationRadius int               `json:"notification_radius" db:"notification_radius"`     // 通知半径（メートル、> 0）
	Priority           int               `json:"priority" db:"priority"`                           // 優先度 -1（低）〜 2（高）
	Visited            bool              `json:"visited" db:"visited"`                             // 訪問済みフラグ（近接エンジンの呼び出し側のみが更新）
	LastNotifiedAt     *int64            `json:"last_notified_at,omitempty" db:"last_notified_at"` // 最終通知時刻（ミリ秒、近接エンジンのみが更新）
	Source             POISource         `json:"source" db:"source"`                               // 取り込み元ソース
	Tags               map[string]string `json:"tags,omitempty" db:"tags"`                         // ソース由来のメタデータ（そのまま保持）
	IsActive           bool              `json:"is_active" db:"is_active"`                         // 無効なPOIは近接評価から除外される
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`                       // 取り込み日時
}

// ToLatLng POIの位置情報をLatLng型に変換
func (p *POI) ToLatLng() LatLng {
	return p.Location.ToLatLng()
}

// EffectiveRadius 通知半径を取得（未設定の場合はデフォルト値）
func (p *POI) EffectiveRadius() int {
	if p.NotificationRadius <= 0 {
		return DefaultNotificationRadiusMeters
	}
	return p.NotificationRadius
}

// NotificationEvent 近接エンジンが発火した通知イベント
type NotificationEvent struct {
	POI            *POI    `json:"poi"`
	DistanceMeters float64 `json:"distance_meters"`
}
