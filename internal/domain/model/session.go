package model

import "time"

// SurveySession 散策セッションの近接エンジン状態のスナップショット
// アプリ再起動後にセッションを継続できるよう永続化の対象になる
type SurveySession struct {
	ID           string           `json:"id" firestore:"id"`
	VisitedIDs   []string         `json:"visited_ids" firestore:"visitedIds"`
	LastNotified map[string]int64 `json:"last_notified" firestore:"lastNotified"`
	SavedAt      time.Time        `json:"saved_at" firestore:"savedAt"`
	ExpiresAt    time.Time        `json:"expires_at" firestore:"expiresAt"`
}
