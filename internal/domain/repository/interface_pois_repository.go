package repository

import (
	"context"

	"poi-radar/internal/domain/model"
)

// POIStats POIリポジトリの統計情報
type POIStats struct {
	TotalCount   int `json:"total_count"`
	VisitedCount int `json:"visited_count"`
}

// POIsRepository POIデータの永続化を担うリポジトリのインターフェース
// 同一IDのPOIはUpsert扱い（後勝ち）とする。正規化がソース+ID単位で
// 冪等なため、再取り込みでも重複は発生しない
type POIsRepository interface {
	Upsert(ctx context.Context, poi *model.POI) error
	BulkUpsert(ctx context.Context, pois []*model.POI) error
	GetAll(ctx context.Context) ([]*model.POI, error)
	GetByID(ctx context.Context, id string) (*model.POI, error)
	DeleteAllFromSource(ctx context.Context, source model.POISource) (int, error)
	UpdateVisited(ctx context.Context, id string, visited bool) error

	// ClearNotificationState は全POIの訪問済みフラグと最終通知時刻を
	// クリアする。セッションリセット時にストレージ側の状態も揃えるために使用する
	ClearNotificationState(ctx context.Context) error

	Stats(ctx context.Context) (*POIStats, error)
}
