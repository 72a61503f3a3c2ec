package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"poi-radar/internal/domain/model"
	"poi-radar/internal/domain/repository"
)

// MemoryPOIsRepository 近接評価用のインメモリPOIレジストリ
// 3つの正規化器の出力をID単位の後勝ちでマージして保持する。
// 永続ストレージと併用する場合は同じインターフェースのDB実装へ
// 書き込んだ上でこのレジストリに読み込む
type MemoryPOIsRepository struct {
	mu   sync.RWMutex
	pois map[string]*model.POI
}

// NewMemoryPOIsRepository MemoryPOIsRepositoryの新しいインスタンスを作成
func NewMemoryPOIsRepository() *MemoryPOIsRepository {
	return &MemoryPOIsRepository{
		pois: make(map[string]*model.POI),
	}
}

// Upsert はPOIを登録する（同一IDは上書き）
func (r *MemoryPOIsRepository) Upsert(ctx context.Context, poi *model.POI) error {
	if poi == nil || poi.ID == "" {
		return fmt.Errorf("IDのないPOIは登録できません")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pois[poi.ID] = poi
	return nil
}

// BulkUpsert は複数のPOIを一括登録する
func (r *MemoryPOIsRepository) BulkUpsert(ctx context.Context, pois []*model.POI) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, poi := range pois {
		if poi == nil || poi.ID == "" {
			continue
		}
		r.pois[poi.ID] = poi
	}
	return nil
}

// GetAll は全POIをID順で返す
func (r *MemoryPOIsRepository) GetAll(ctx context.Context) ([]*model.POI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.POI, 0, len(r.pois))
	for _, poi := range r.pois {
		result = append(result, poi)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetByID は指定IDのPOIを取得する
func (r *MemoryPOIsRepository) GetByID(ctx context.Context, id string) (*model.POI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	poi, ok := r.pois[id]
	if !ok {
		return nil, fmt.Errorf("POI ID %s が見つかりません", id)
	}
	return poi, nil
}

// DeleteAllFromSource は指定ソースのPOIを一括削除し、削除件数を返す
func (r *MemoryPOIsRepository) DeleteAllFromSource(ctx context.Context, source model.POISource) (int, error) {
	if !source.IsValid() {
		return 0, fmt.Errorf("不明なソースです: %s", source)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, poi := range r.pois {
		if poi.Source == source {
			delete(r.pois, id)
			deleted++
		}
	}
	return deleted, nil
}

// UpdateVisited は指定POIの訪問済みフラグを更新する
func (r *MemoryPOIsRepository) UpdateVisited(ctx context.Context, id string, visited bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	poi, ok := r.pois[id]
	if !ok {
		return fmt.Errorf("POI ID %s が見つかりません", id)
	}
	poi.Visited = visited
	return nil
}

// ClearNotificationState は全POIの訪問済みフラグと最終通知時刻をクリアする
func (r *MemoryPOIsRepository) ClearNotificationState(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, poi := range r.pois {
		poi.Visited = false
		poi.LastNotifiedAt = nil
	}
	return nil
}

// Stats は登録済みPOIの統計情報を返す
func (r *MemoryPOIsRepository) Stats(ctx context.Context) (*repository.POIStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &repository.POIStats{TotalCount: len(r.pois)}
	for _, poi := range r.pois {
		if poi.Visited {
			stats.VisitedCount++
		}
	}
	return stats, nil
}
