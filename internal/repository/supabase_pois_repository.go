package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"poi-radar/internal/database"
	"poi-radar/internal/domain/model"
	"poi-radar/internal/domain/repository"
)

// SupabasePOIsRepository Supabase (PostgREST) を使用したPOIリポジトリ
type SupabasePOIsRepository struct {
	client *database.SupabaseClient
}

// NewSupabasePOIsRepository SupabasePOIsRepositoryの新しいインスタンスを作成
func NewSupabasePOIsRepository(client *database.SupabaseClient) repository.POIsRepository {
	return &SupabasePOIsRepository{
		client: client,
	}
}

// Upsert はPOIを登録する（同一IDは上書き）
func (r *SupabasePOIsRepository) Upsert(ctx context.Context, poi *model.POI) error {
	data, err := json.Marshal(poi)
	if err != nil {
		return fmt.Errorf("POIデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("pois").Insert(string(data), true, "id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("POIデータの登録失敗: %w", err)
	}

	return nil
}

// BulkUpsert は複数のPOIを一括登録する
func (r *SupabasePOIsRepository) BulkUpsert(ctx context.Context, pois []*model.POI) error {
	if len(pois) == 0 {
		return nil
	}

	data, err := json.Marshal(pois)
	if err != nil {
		return fmt.Errorf("POI一括データのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("pois").Insert(string(data), true, "id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("POI一括データの登録失敗: %w", err)
	}

	return nil
}

// GetAll は全POIを取得する
func (r *SupabasePOIsRepository) GetAll(ctx context.Context) ([]*model.POI, error) {
	var pois []model.POI
	data, count, err := r.client.GetClient().From("pois").Select("*", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("POIデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &pois); err != nil {
		return nil, fmt.Errorf("POIデータのJSONアンマーシャル失敗: %w", err)
	}

	var result []*model.POI
	for i := range pois {
		result = append(result, &pois[i])
	}
	return result, nil
}

// GetByID は指定IDのPOIを取得する
func (r *SupabasePOIsRepository) GetByID(ctx context.Context, id string) (*model.POI, error) {
	var pois []model.POI
	data, count, err := r.client.GetClient().From("pois").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("POIデータの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &pois); err != nil {
		return nil, fmt.Errorf("POIデータのJSONアンマーシャル失敗: %w", err)
	}

	if len(pois) == 0 {
		return nil, fmt.Errorf("POI ID %s が見つかりません", id)
	}

	return &pois[0], nil
}

// DeleteAllFromSource は指定ソースのPOIを一括削除し、削除件数を返す
// PostgRESTのDeleteは削除件数を返さないため、件数は削除前のSelectで計測する。
// 計測と削除の間に並行書き込みがあった場合、返される件数は実際の削除数と
// ずれる可能性がある
func (r *SupabasePOIsRepository) DeleteAllFromSource(ctx context.Context, source model.POISource) (int, error) {
	if !source.IsValid() {
		return 0, fmt.Errorf("不明なソースです: %s", source)
	}

	_, count, err := r.client.GetClient().From("pois").Select("id", "exact", false).Eq("source", string(source)).Execute()
	if err != nil {
		return 0, fmt.Errorf("削除対象POIの取得失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("pois").Delete("", "").Eq("source", string(source)).Execute()
	if err != nil {
		return 0, fmt.Errorf("ソース別POI削除失敗: %w", err)
	}

	return int(count), nil
}

// UpdateVisited は指定POIの訪問済みフラグを更新する
func (r *SupabasePOIsRepository) UpdateVisited(ctx context.Context, id string, visited bool) error {
	payload, err := json.Marshal(map[string]bool{"visited": visited})
	if err != nil {
		return fmt.Errorf("更新データのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("pois").Update(string(payload), "", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("訪問済みフラグ更新失敗: %w", err)
	}

	return nil
}

// ClearNotificationState は全POIの訪問済みフラグと最終通知時刻をクリアする
func (r *SupabasePOIsRepository) ClearNotificationState(ctx context.Context) error {
	payload, err := json.Marshal(map[string]any{"visited": false, "last_notified_at": nil})
	if err != nil {
		return fmt.Errorf("更新データのJSONマーシャル失敗: %w", err)
	}

	// PostgRESTはフィルタなしの一括更新を拒否するため全行にマッチする条件を付ける
	_, _, err = r.client.GetClient().From("pois").Update(string(payload), "", "").Neq("id", "").Execute()
	if err != nil {
		return fmt.Errorf("通知状態のクリア失敗: %w", err)
	}

	return nil
}

// Stats は登録済みPOIの統計情報を返す
func (r *SupabasePOIsRepository) Stats(ctx context.Context) (*repository.POIStats, error) {
	_, total, err := r.client.GetClient().From("pois").Select("id", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("統計情報の取得失敗: %w", err)
	}

	_, visited, err := r.client.GetClient().From("pois").Select("id", "exact", false).Eq("visited", "true").Execute()
	if err != nil {
		return nil, fmt.Errorf("訪問済み件数の取得失敗: %w", err)
	}

	return &repository.POIStats{
		TotalCount:   int(total),
		VisitedCount: int(visited),
	}, nil
}
