package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"poi-radar/internal/domain/model"
	"poi-radar/internal/domain/repository"
	"poi-radar/internal/domain/service"
)

// sessionTTLHours セッションスナップショットの保持時間
const sessionTTLHours = 24

// ProximityUseCase 位置更新の評価と散策セッションの管理を行うユースケース
type ProximityUseCase interface {
	// HandlePositionUpdate は位置更新1件を評価し、発火した通知イベントを返す
	HandlePositionUpdate(ctx context.Context, fix model.PositionFix) ([]model.NotificationEvent, error)

	// Nearby は指定距離以内のPOIを距離の昇順で返す（状態は変更しない）
	Nearby(ctx context.Context, lat, lng, maxDistanceMeters float64) ([]model.NotificationEvent, error)

	// MarkVisited は指定POIを訪問済みにする（以後そのPOIは発火しない）
	MarkVisited(ctx context.Context, poiID string) error

	// ResetSession は訪問済みラッチと通知履歴を全てクリアする
	ResetSession(ctx context.Context) error

	// SaveSession は現在のセッション状態を永続化してIDを返す
	SaveSession(ctx context.Context) (string, error)

	// RestoreSession は保存済みのセッション状態を復元する
	RestoreSession(ctx context.Context, sessionID string) error
}

// proximityUseCaseImpl はProximityUseCaseの実装
type proximityUseCaseImpl struct {
	poiRepo     repository.POIsRepository
	engine      *service.ProximityService
	sessionRepo repository.SessionStateRepository // nilの場合セッション永続化は無効
}

// NewProximityUseCase は新しいProximityUseCaseインスタンスを作成
// sessionRepoはnil可（その場合Save/RestoreSessionはエラーを返す）
func NewProximityUseCase(
	poiRepo repository.POIsRepository,
	engine *service.ProximityService,
	sessionRepo repository.SessionStateRepository,
) ProximityUseCase {
	return &proximityUseCaseImpl{
		poiRepo:     poiRepo,
		engine:      engine,
		sessionRepo: sessionRepo,
	}
}

// HandlePositionUpdate は位置更新1件を評価し、発火した通知イベントを返す
func (u *proximityUseCaseImpl) HandlePositionUpdate(ctx context.Context, fix model.PositionFix) ([]model.NotificationEvent, error) {
	observer := fix.ToLatLng()
	if !(model.Location{Latitude: fix.Latitude, Longitude: fix.Longitude}).IsValid() {
		return nil, fmt.Errorf("緯度経度が有効範囲外です")
	}

	pois, err := u.poiRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("POI一覧の取得に失敗: %w", err)
	}

	nowMillis := fix.Timestamp.UnixMilli()
	if fix.Timestamp.IsZero() {
		nowMillis = time.Now().UnixMilli()
	}

	events := u.engine.Evaluate(observer, pois, nowMillis)
	if len(events) > 0 {
		log.Printf("🔔 %d件のPOI通知が発火", len(events))
	}
	return events, nil
}

// Nearby は指定距離以内のPOIを距離の昇順で返す
func (u *proximityUseCaseImpl) Nearby(ctx context.Context, lat, lng, maxDistanceMeters float64) ([]model.NotificationEvent, error) {
	pois, err := u.poiRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("POI一覧の取得に失敗: %w", err)
	}

	return u.engine.Nearby(model.LatLng{Lat: lat, Lng: lng}, pois, maxDistanceMeters), nil
}

// MarkVisited は指定POIを訪問済みにする
// エンジンのラッチとリポジトリの訪問済みフラグの両方を更新する
func (u *proximityUseCaseImpl) MarkVisited(ctx context.Context, poiID string) error {
	if _, err := u.poiRepo.GetByID(ctx, poiID); err != nil {
		return err
	}

	u.engine.MarkVisited(poiID)
	if err := u.poiRepo.UpdateVisited(ctx, poiID, true); err != nil {
		return fmt.Errorf("訪問済みフラグの更新に失敗: %w", err)
	}

	log.Printf("✅ POIを訪問済みに更新: %s", poiID)
	return nil
}

// ResetSession は訪問済みラッチと通知履歴を全てクリアする
// ストレージ側の訪問済みフラグ・最終通知時刻も合わせてクリアし、
// 再起動後にリセット前の状態が復活しないようにする
func (u *proximityUseCaseImpl) ResetSession(ctx context.Context) error {
	u.engine.Reset()

	if err := u.poiRepo.ClearNotificationState(ctx); err != nil {
		return fmt.Errorf("通知状態のクリアに失敗: %w", err)
	}

	log.Printf("🔄 散策セッションをリセット")
	return nil
}

// SaveSession は現在のセッション状態を永続化してIDを返す
func (u *proximityUseCaseImpl) SaveSession(ctx context.Context) (string, error) {
	if u.sessionRepo == nil {
		return "", fmt.Errorf("セッション永続化が設定されていません")
	}

	sessionID, err := u.sessionRepo.SaveSession(ctx, u.engine.Snapshot(), sessionTTLHours)
	if err != nil {
		return "", fmt.Errorf("セッション保存に失敗: %w", err)
	}
	return sessionID, nil
}

// RestoreSession は保存済みのセッション状態を復元する
func (u *proximityUseCaseImpl) RestoreSession(ctx context.Context, sessionID string) error {
	if u.sessionRepo == nil {
		return fmt.Errorf("セッション永続化が設定されていません")
	}

	session, err := u.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("セッション復元に失敗: %w", err)
	}

	u.engine.Restore(session)
	log.Printf("✅ セッションを復元: %s (訪問済み%d件)", sessionID, len(session.VisitedIDs))
	return nil
}
