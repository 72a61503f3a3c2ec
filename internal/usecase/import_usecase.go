package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"poi-radar/internal/domain/model"
	"poi-radar/internal/domain/repository"
	"poi-radar/internal/domain/service"
	"poi-radar/internal/infrastructure/bikeshare"
	"poi-radar/internal/infrastructure/gpx"
	"poi-radar/internal/infrastructure/overpass"
)

// ImportUseCase POIの取り込みとソース単位の管理を行うユースケース
type ImportUseCase interface {
	// ImportGPX はGPXストリームからウェイポイントを取り込む
	ImportGPX(ctx context.Context, r io.Reader) (int, error)

	// ImportBikeShareGeoJSON はバイクシェアのGeoJSONペイロードを取り込む
	ImportBikeShareGeoJSON(ctx context.Context, data []byte) (int, error)

	// ImportOverpass は指定座標周辺のステーションをOverpass APIから取り込む
	ImportOverpass(ctx context.Context, lat, lng float64, radiusMeters int) (int, error)

	// CreateManualPOI は手動登録のPOIを作成する
	CreateManualPOI(ctx context.Context, name, description string, location model.Location, radiusMeters int) (*model.POI, error)

	// DeleteSource は指定ソースのPOIを一括削除する
	DeleteSource(ctx context.Context, source model.POISource) (int, error)

	// Stats は登録済みPOIの統計情報を取得する
	Stats(ctx context.Context) (*repository.POIStats, error)
}

// importUseCaseImpl はImportUseCaseの実装
type importUseCaseImpl struct {
	poiRepo            repository.POIsRepository
	overpassClient     *overpass.Client
	waypointNormalizer *gpx.WaypointNormalizer
	featureNormalizer  *bikeshare.FeatureNormalizer
	tagQueryNormalizer *overpass.TagQueryNormalizer
	classifier         *service.CategoryClassifier
}

// NewImportUseCase は新しいImportUseCaseインスタンスを作成
func NewImportUseCase(poiRepo repository.POIsRepository, overpassClient *overpass.Client) ImportUseCase {
	return &importUseCaseImpl{
		poiRepo:            poiRepo,
		overpassClient:     overpassClient,
		waypointNormalizer: gpx.NewWaypointNormalizer(),
		featureNormalizer:  bikeshare.NewFeatureNormalizer(),
		tagQueryNormalizer: overpass.NewTagQueryNormalizer(),
		classifier:         service.NewCategoryClassifier(),
	}
}

// ImportGPX はGPXストリームからウェイポイントを取り込む
// パース自体が失敗した場合はエラーを返す（0件との区別のため）
func (u *importUseCaseImpl) ImportGPX(ctx context.Context, r io.Reader) (int, error) {
	log.Printf("🚀 GPX取り込み開始")

	pois, err := u.waypointNormalizer.NormalizeReader(r, model.SourceGPX)
	if err != nil {
		return 0, fmt.Errorf("GPX取り込みに失敗: %w", err)
	}

	count, err := u.replaceSource(ctx, model.SourceGPX, pois)
	if err != nil {
		return 0, err
	}

	log.Printf("🎉 GPX取り込み完了 (%d件)", count)
	return count, nil
}

// ImportBikeShareGeoJSON はバイクシェアのGeoJSONペイロードを取り込む
func (u *importUseCaseImpl) ImportBikeShareGeoJSON(ctx context.Context, data []byte) (int, error) {
	log.Printf("🚀 バイクシェアGeoJSON取り込み開始")

	pois, err := u.featureNormalizer.NormalizeBytes(data)
	if err != nil {
		return 0, fmt.Errorf("GeoJSON取り込みに失敗: %w", err)
	}

	count, err := u.replaceSource(ctx, model.SourceBikeShareGeoJSON, pois)
	if err != nil {
		return 0, err
	}

	log.Printf("🎉 バイクシェアGeoJSON取り込み完了 (%d件)", count)
	return count, nil
}

// ImportOverpass は指定座標周辺のステーションをOverpass APIから取り込む
// 通信失敗は「0件」ではなくエラーとして呼び出し側へ伝える
func (u *importUseCaseImpl) ImportOverpass(ctx context.Context, lat, lng float64, radiusMeters int) (int, error) {
	log.Printf("🚀 Overpass取り込み開始 (lat: %.4f, lng: %.4f, 半径: %dm)", lat, lng, radiusMeters)

	elements, err := u.overpassClient.FetchBicycleRentals(ctx, lat, lng, radiusMeters)
	if err != nil {
		return 0, fmt.Errorf("Overpass検索に失敗: %w", err)
	}

	pois := u.tagQueryNormalizer.Normalize(elements)
	count, err := u.replaceSource(ctx, model.SourceOverpass, pois)
	if err != nil {
		return 0, err
	}

	log.Printf("🎉 Overpass取り込み完了 (%d件)", count)
	return count, nil
}

// replaceSource はソーススコープを置き換える（削除 → 一括登録）
// 正規化がソース+ID単位で冪等なため、再取り込みしても重複しない
func (u *importUseCaseImpl) replaceSource(ctx context.Context, source model.POISource, pois []*model.POI) (int, error) {
	deleted, err := u.poiRepo.DeleteAllFromSource(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("既存POIの削除に失敗: %w", err)
	}
	if deleted > 0 {
		log.Printf("🗑️ 既存の%s POIを%d件削除", source, deleted)
	}

	if err := u.poiRepo.BulkUpsert(ctx, pois); err != nil {
		return 0, fmt.Errorf("POIの一括登録に失敗: %w", err)
	}

	return len(pois), nil
}

// CreateManualPOI は手動登録のPOIを作成する
func (u *importUseCaseImpl) CreateManualPOI(ctx context.Context, name, description string, location model.Location, radiusMeters int) (*model.POI, error) {
	if name == "" {
		return nil, fmt.Errorf("POI名は必須です")
	}
	if !location.IsValid() {
		return nil, fmt.Errorf("緯度経度が有効範囲外です")
	}
	if radiusMeters <= 0 {
		radiusMeters = model.DefaultNotificationRadiusMeters
	}

	poi := &model.POI{
		ID:                 fmt.Sprintf("%s_%s", model.SourceManual, uuid.New().String()),
		Name:               name,
		Description:        description,
		Location:           location,
		Category:           u.classifier.Classify("", name),
		NotificationRadius: radiusMeters,
		Priority:           0,
		Source:             model.SourceManual,
		Tags:               map[string]string{},
		IsActive:           true,
		CreatedAt:          time.Now(),
	}

	if err := u.poiRepo.Upsert(ctx, poi); err != nil {
		return nil, fmt.Errorf("手動POIの登録に失敗: %w", err)
	}

	log.Printf("✅ 手動POIを登録: %s (%s)", poi.Name, poi.ID)
	return poi, nil
}

// DeleteSource は指定ソースのPOIを一括削除する
func (u *importUseCaseImpl) DeleteSource(ctx context.Context, source model.POISource) (int, error) {
	if !source.IsValid() {
		return 0, fmt.Errorf("不明なソースです: %s", source)
	}

	deleted, err := u.poiRepo.DeleteAllFromSource(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("ソース別POI削除に失敗: %w", err)
	}

	log.Printf("🗑️ %sのPOIを%d件削除", source, deleted)
	return deleted, nil
}

// Stats は登録済みPOIの統計情報を取得する
func (u *importUseCaseImpl) Stats(ctx context.Context) (*repository.POIStats, error) {
	stats, err := u.poiRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("統計情報の取得に失敗: %w", err)
	}
	return stats, nil
}
