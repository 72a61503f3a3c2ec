package repository

import (
	"context"
	"testing"

	"poi-radar/internal/domain/model"
)

func newPOI(id string, source model.POISource) *model.POI {
	return &model.POI{
		ID:       id,
		Name:     id,
		Location: model.Location{Latitude: 35.0, Longitude: 135.0},
		Category: model.CategoryUnknown,
		Source:   source,
		IsActive: true,
	}
}

func TestMemoryPOIsRepositoryUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("同一IDは後勝ちで上書き", func(t *testing.T) {
		repo := NewMemoryPOIsRepository()

		first := newPOI("p1", model.SourceGPX)
		first.Name = "old name"
		if err := repo.Upsert(ctx, first); err != nil {
			t.Fatalf("登録に失敗しました: %v", err)
		}

		second := newPOI("p1", model.SourceGPX)
		second.Name = "new name"
		if err := repo.Upsert(ctx, second); err != nil {
			t.Fatalf("上書きに失敗しました: %v", err)
		}

		got, err := repo.GetByID(ctx, "p1")
		if err != nil {
			t.Fatalf("取得に失敗しました: %v", err)
		}
		if got.Name != "new name" {
			t.Errorf("上書きが反映されていません: %s", got.Name)
		}

		stats, _ := repo.Stats(ctx)
		if stats.TotalCount != 1 {
			t.Errorf("総数が不正です: %d", stats.TotalCount)
		}
	})

	t.Run("IDのないPOIはエラー", func(t *testing.T) {
		repo := NewMemoryPOIsRepository()
		if err := repo.Upsert(ctx, &model.POI{}); err == nil {
			t.Errorf("ID未設定でエラーになりませんでした")
		}
	})
}

func TestMemoryPOIsRepositoryGetAll(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPOIsRepository()

	pois := []*model.POI{
		newPOI("c", model.SourceGPX),
		newPOI("a", model.SourceOverpass),
		newPOI("b", model.SourceManual),
	}
	if err := repo.BulkUpsert(ctx, pois); err != nil {
		t.Fatalf("一括登録に失敗しました: %v", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("全件取得に失敗しました: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, poi := range all {
		if poi.ID != want[i] {
			t.Errorf("ID順が不正です: index %d = %s", i, poi.ID)
		}
	}
}

func TestMemoryPOIsRepositoryDeleteAllFromSource(t *testing.T) {
	ctx := context.Background()

	t.Run("指定ソースのみ削除し件数を返す", func(t *testing.T) {
		repo := NewMemoryPOIsRepository()
		_ = repo.BulkUpsert(ctx, []*model.POI{
			newPOI("g1", model.SourceGPX),
			newPOI("g2", model.SourceGPX),
			newPOI("o1", model.SourceOverpass),
		})

		deleted, err := repo.DeleteAllFromSource(ctx, model.SourceGPX)
		if err != nil {
			t.Fatalf("削除に失敗しました: %v", err)
		}
		if deleted != 2 {
			t.Errorf("削除件数が不正です: %d", deleted)
		}

		remaining, _ := repo.GetAll(ctx)
		if len(remaining) != 1 || remaining[0].ID != "o1" {
			t.Errorf("削除後の残存POIが不正です: %v", remaining)
		}
	})

	t.Run("不明なソースはエラー", func(t *testing.T) {
		repo := NewMemoryPOIsRepository()
		if _, err := repo.DeleteAllFromSource(ctx, model.POISource("bogus")); err == nil {
			t.Errorf("不明なソースでエラーになりませんでした")
		}
	})

	t.Run("該当なしは0件", func(t *testing.T) {
		repo := NewMemoryPOIsRepository()
		deleted, err := repo.DeleteAllFromSource(ctx, model.SourceManual)
		if err != nil {
			t.Fatalf("削除に失敗しました: %v", err)
		}
		if deleted != 0 {
			t.Errorf("削除件数が不正です: %d", deleted)
		}
	})
}

func TestMemoryPOIsRepositoryVisited(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPOIsRepository()
	_ = repo.BulkUpsert(ctx, []*model.POI{
		newPOI("p1", model.SourceGPX),
		newPOI("p2", model.SourceGPX),
	})

	t.Run("訪問済みフラグの更新と統計", func(t *testing.T) {
		if err := repo.UpdateVisited(ctx, "p1", true); err != nil {
			t.Fatalf("更新に失敗しました: %v", err)
		}

		got, _ := repo.GetByID(ctx, "p1")
		if !got.Visited {
			t.Errorf("訪問済みフラグが反映されていません")
		}

		stats, _ := repo.Stats(ctx)
		if stats.TotalCount != 2 || stats.VisitedCount != 1 {
			t.Errorf("統計が不正です: %+v", stats)
		}
	})

	t.Run("存在しないIDはエラー", func(t *testing.T) {
		if err := repo.UpdateVisited(ctx, "missing", true); err == nil {
			t.Errorf("存在しないIDでエラーになりませんでした")
		}
	})
}

func TestMemoryPOIsRepositoryClearNotificationState(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPOIsRepository()

	notified := int64(5000)
	visited := newPOI("p1", model.SourceGPX)
	visited.Visited = true
	visited.LastNotifiedAt = &notified
	_ = repo.BulkUpsert(ctx, []*model.POI{visited, newPOI("p2", model.SourceGPX)})

	if err := repo.ClearNotificationState(ctx); err != nil {
		t.Fatalf("クリアに失敗しました: %v", err)
	}

	got, _ := repo.GetByID(ctx, "p1")
	if got.Visited {
		t.Errorf("訪問済みフラグがクリアされていません")
	}
	if got.LastNotifiedAt != nil {
		t.Errorf("最終通知時刻がクリアされていません: %v", got.LastNotifiedAt)
	}

	stats, _ := repo.Stats(ctx)
	if stats.VisitedCount != 0 {
		t.Errorf("クリア後の訪問済み件数が不正です: %d", stats.VisitedCount)
	}
}
