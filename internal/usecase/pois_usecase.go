package usecase

import (
	"context"
	"fmt"

	"poi-radar/internal/domain/model"
	"poi-radar/internal/domain/repository"
)

// POIsUseCase 登録済みPOIの照会を行うユースケース
type POIsUseCase interface {
	// GetAll は登録済みPOIの一覧を取得する
	GetAll(ctx context.Context) ([]*model.POI, error)

	// GetByID は指定IDのPOIを取得する
	GetByID(ctx context.Context, id string) (*model.POI, error)
}

// poisUseCaseImpl はPOIsUseCaseの実装
type poisUseCaseImpl struct {
	poiRepo repository.POIsRepository
}

// NewPOIsUseCase は新しいPOIsUseCaseインスタンスを作成
func NewPOIsUseCase(poiRepo repository.POIsRepository) POIsUseCase {
	return &poisUseCaseImpl{
		poiRepo: poiRepo,
	}
}

// GetAll は登録済みPOIの一覧を取得する
func (u *poisUseCaseImpl) GetAll(ctx context.Context) ([]*model.POI, error) {
	pois, err := u.poiRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("POI一覧の取得に失敗: %w", err)
	}
	return pois, nil
}

// GetByID は指定IDのPOIを取得する
func (u *poisUseCaseImpl) GetByID(ctx context.Context, id string) (*model.POI, error) {
	poi, err := u.poiRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("POIの取得に失敗: %w", err)
	}
	return poi, nil
}
