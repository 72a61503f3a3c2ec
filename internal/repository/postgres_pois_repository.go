package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"poi-radar/internal/domain/model"
	"poi-radar/internal/domain/repository"
	"poi-radar/internal/infrastructure/database"
)

// PostgresPOIsRepository PostgreSQLを使用したPOIリポジトリ
type PostgresPOIsRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresPOIsRepository PostgresPOIsRepositoryの新しいインスタンスを作成
func NewPostgresPOIsRepository(client *database.PostgreSQLClient) repository.POIsRepository {
	return &PostgresPOIsRepository{
		client: client,
	}
}

// poiRow クエリ結果を受け取るための構造体
type poiRow struct {
	ID                 string
	Name               string
	Description        sql.NullString
	Latitude           float64
	Longitude          float64
	Category           string
	NotificationRadius int
	Priority           int
	Visited            bool
	LastNotifiedAt     sql.NullInt64
	Source             string
	Tags               []byte
	IsActive           bool
	CreatedAt          time.Time
}

// toPOI poiRowをmodel.POIに変換
func (row *poiRow) toPOI() (*model.POI, error) {
	tags := make(map[string]string)
	if len(row.Tags) > 0 {
		if err := json.Unmarshal(row.Tags, &tags); err != nil {
			return nil, fmt.Errorf("tags JSONBパースエラー: %w", err)
		}
	}

	poi := &model.POI{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description.String,
		Location: model.Location{
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
		},
		Category:           model.Category(row.Category),
		NotificationRadius: row.NotificationRadius,
		Priority:           row.Priority,
		Visited:            row.Visited,
		Source:             model.POISource(row.Source),
		Tags:               tags,
		IsActive:           row.IsActive,
		CreatedAt:          row.CreatedAt,
	}

	if row.LastNotifiedAt.Valid {
		millis := row.LastNotifiedAt.Int64
		poi.LastNotifiedAt = &millis
	}

	return poi, nil
}

const poiColumns = `id, name, description, latitude, longitude, category, notification_radius, priority, visited, last_notified_at, source, tags, is_active, created_at`

// execer database/sqlのDBとTxの共通インターフェース
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Upsert はPOIを登録する（同一IDは上書き）
func (r *PostgresPOIsRepository) Upsert(ctx context.Context, poi *model.POI) error {
	return upsertPOI(ctx, r.client.DB, poi)
}

func upsertPOI(ctx context.Context, db execer, poi *model.POI) error {
	tagsJSON, err := json.Marshal(poi.Tags)
	if err != nil {
		return fmt.Errorf("tags JSONマーシャルエラー: %w", err)
	}

	query := `
		INSERT INTO pois (` + poiColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			category = EXCLUDED.category,
			notification_radius = EXCLUDED.notification_radius,
			priority = EXCLUDED.priority,
			source = EXCLUDED.source,
			tags = EXCLUDED.tags,
			is_active = EXCLUDED.is_active
	`

	var lastNotified sql.NullInt64
	if poi.LastNotifiedAt != nil {
		lastNotified = sql.NullInt64{Int64: *poi.LastNotifiedAt, Valid: true}
	}

	_, err = db.ExecContext(ctx, query,
		poi.ID, poi.Name, poi.Description,
		poi.Location.Latitude, poi.Location.Longitude,
		string(poi.Category), poi.NotificationRadius, poi.Priority,
		poi.Visited, lastNotified, string(poi.Source), tagsJSON,
		poi.IsActive, poi.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("POIデータの登録失敗: %w", err)
	}

	return nil
}

// BulkUpsert は複数のPOIをトランザクション内で一括登録する
func (r *PostgresPOIsRepository) BulkUpsert(ctx context.Context, pois []*model.POI) error {
	tx, err := r.client.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始失敗: %w", err)
	}
	defer tx.Rollback()

	for _, poi := range pois {
		if poi == nil {
			continue
		}
		if err := upsertPOI(ctx, tx, poi); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションコミット失敗: %w", err)
	}
	return nil
}

// GetAll は全POIを取得する
func (r *PostgresPOIsRepository) GetAll(ctx context.Context) ([]*model.POI, error) {
	query := `SELECT ` + poiColumns + ` FROM pois ORDER BY id`

	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("POIデータの取得失敗: %w", err)
	}
	defer rows.Close()

	var pois []*model.POI
	for rows.Next() {
		var row poiRow
		err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.Latitude, &row.Longitude,
			&row.Category, &row.NotificationRadius, &row.Priority, &row.Visited,
			&row.LastNotifiedAt, &row.Source, &row.Tags, &row.IsActive, &row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("POIデータスキャンエラー: %w", err)
		}

		poi, err := row.toPOI()
		if err != nil {
			return nil, err
		}
		pois = append(pois, poi)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return pois, nil
}

// GetByID は指定IDのPOIを取得する
func (r *PostgresPOIsRepository) GetByID(ctx context.Context, id string) (*model.POI, error) {
	query := `SELECT ` + poiColumns + ` FROM pois WHERE id = $1`

	var row poiRow
	err := r.client.DB.QueryRowContext(ctx, query, id).Scan(
		&row.ID, &row.Name, &row.Description, &row.Latitude, &row.Longitude,
		&row.Category, &row.NotificationRadius, &row.Priority, &row.Visited,
		&row.LastNotifiedAt, &row.Source, &row.Tags, &row.IsActive, &row.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("POI ID %s が見つかりません", id)
		}
		return nil, fmt.Errorf("POIデータの取得失敗: %w", err)
	}

	return row.toPOI()
}

// DeleteAllFromSource は指定ソースのPOIを一括削除し、削除件数を返す
func (r *PostgresPOIsRepository) DeleteAllFromSource(ctx context.Context, source model.POISource) (int, error) {
	if !source.IsValid() {
		return 0, fmt.Errorf("不明なソースです: %s", source)
	}

	result, err := r.client.DB.ExecContext(ctx, `DELETE FROM pois WHERE source = $1`, string(source))
	if err != nil {
		return 0, fmt.Errorf("ソース別POI削除失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得失敗: %w", err)
	}
	return int(affected), nil
}

// UpdateVisited は指定POIの訪問済みフラグを更新する
func (r *PostgresPOIsRepository) UpdateVisited(ctx context.Context, id string, visited bool) error {
	result, err := r.client.DB.ExecContext(ctx, `UPDATE pois SET visited = $2 WHERE id = $1`, id, visited)
	if err != nil {
		return fmt.Errorf("訪問済みフラグ更新失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新件数の取得失敗: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("POI ID %s が見つかりません", id)
	}
	return nil
}

// ClearNotificationState は全POIの訪問済みフラグと最終通知時刻をクリアする
func (r *PostgresPOIsRepository) ClearNotificationState(ctx context.Context) error {
	_, err := r.client.DB.ExecContext(ctx, `UPDATE pois SET visited = false, last_notified_at = NULL`)
	if err != nil {
		return fmt.Errorf("通知状態のクリア失敗: %w", err)
	}
	return nil
}

// Stats は登録済みPOIの統計情報を返す
func (r *PostgresPOIsRepository) Stats(ctx context.Context) (*repository.POIStats, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE visited) FROM pois`

	var stats repository.POIStats
	if err := r.client.DB.QueryRowContext(ctx, query).Scan(&stats.TotalCount, &stats.VisitedCount); err != nil {
		return nil, fmt.Errorf("統計情報の取得失敗: %w", err)
	}
	return &stats, nil
}
