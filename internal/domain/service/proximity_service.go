package service

import (
	"sync"
	"time"

	"poi-radar/internal/domain/helper"
	"poi-radar/internal/domain/model"
)

// NotificationCooldown 同一POIが再通知されるまでの最小経過時間
const NotificationCooldown = 5 * time.Minute

// ProximityService 観測者の位置とPOI集合から通知の発火を判定する近接エンジン
// POIごとの最終通知時刻と訪問済みラッチをインスタンス内に保持する。
// セッション単位で生成されることを想定しており、パッケージグローバルな
// 状態は持たない
type ProximityService struct {
	mu           sync.Mutex
	lastNotified map[string]int64 // POI ID → 最終通知時刻（ミリ秒）
	visited      map[string]bool  // POI ID → 訪問済みラッチ
}

// NewProximityService ProximityServiceの新しいインスタンスを作成
func NewProximityService() *ProximityService {
	return &ProximityService{
		lastNotified: make(map[string]int64),
		visited:      make(map[string]bool),
	}
}

// Evaluate は位置更新1件に対して通知すべきPOIの一覧を判定する
// 発火条件:
//  1. POIが有効であること（無効なPOIは評価対象外）
//  2. 距離が通知半径以内であること
//  3. 訪問済みラッチが立っていないこと
//  4. 最終通知からクールダウン時間が経過していること（未通知なら即発火）
//
// 発火したPOIの最終通知時刻はnowMillisに更新される（唯一の副作用）
func (s *ProximityService) Evaluate(observer model.LatLng, pois []*model.POI, nowMillis int64) []model.NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []model.NotificationEvent
	for _, poi := range pois {
		if poi == nil || !poi.IsActive {
			continue
		}

		distance := helper.HaversineDistancePOI(observer, poi)
		if distance > float64(poi.EffectiveRadius()) {
			continue
		}

		if s.visited[poi.ID] || poi.Visited {
			continue
		}

		if last, ok := s.lastNotified[poi.ID]; ok {
			if nowMillis-last < NotificationCooldown.Milliseconds() {
				continue
			}
		}

		s.lastNotified[poi.ID] = nowMillis
		notifiedAt := nowMillis
		poi.LastNotifiedAt = &notifiedAt

		events = append(events, model.NotificationEvent{
			POI:            poi,
			DistanceMeters: distance,
		})
	}

	return events
}

// Nearby は指定距離以内のPOIを距離の昇順で返す（UI表示用、状態は変更しない）
// クールダウンや訪問済みラッチとは無関係に全ての有効なPOIが対象
func (s *ProximityService) Nearby(observer model.LatLng, pois []*model.POI, maxDistanceMeters float64) []model.NotificationEvent {
	var results []model.NotificationEvent
	var candidates []*model.POI

	for _, poi := range pois {
		if poi == nil || !poi.IsActive {
			continue
		}
		if helper.HaversineDistancePOI(observer, poi) <= maxDistanceMeters {
			candidates = append(candidates, poi)
		}
	}

	helper.SortByDistanceFromLocation(observer, candidates)
	for _, poi := range candidates {
		results = append(results, model.NotificationEvent{
			POI:            poi,
			DistanceMeters: helper.HaversineDistancePOI(observer, poi),
		})
	}

	return results
}

// MarkVisited は指定POIの訪問済みラッチを立てる
// 一度立てるとReset()まで当該POIは二度と発火しない
func (s *ProximityService) MarkVisited(poiID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visited[poiID] = true
}

// IsVisited は指定POIの訪問済みラッチが立っているかを返す
func (s *ProximityService) IsVisited(poiID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited[poiID]
}

// Reset は全ての訪問済みラッチと最終通知時刻をクリアする
// 散策セッションの再開時に使用する
func (s *ProximityService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastNotified = make(map[string]int64)
	s.visited = make(map[string]bool)
}

// Snapshot は現在のセッション状態を永続化用に取り出す
func (s *ProximityService) Snapshot() *model.SurveySession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &model.SurveySession{
		VisitedIDs:   make([]string, 0, len(s.visited)),
		LastNotified: make(map[string]int64, len(s.lastNotified)),
		SavedAt:      time.Now(),
	}
	for id, v := range s.visited {
		if v {
			session.VisitedIDs = append(session.VisitedIDs, id)
		}
	}
	for id, millis := range s.lastNotified {
		session.LastNotified[id] = millis
	}
	return session
}

// Restore は永続化されたセッション状態を復元する（既存の状態は破棄）
func (s *ProximityService) Restore(session *model.SurveySession) {
	if session == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastNotified = make(map[string]int64, len(session.LastNotified))
	s.visited = make(map[string]bool, len(session.VisitedIDs))
	for id, millis := range session.LastNotified {
		s.lastNotified[id] = millis
	}
	for _, id := range session.VisitedIDs {
		s.visited[id] = true
	}
}
