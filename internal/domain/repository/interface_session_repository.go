package repository

import (
	"context"

	"poi-radar/internal/domain/model"
)

// SessionStateRepository 散策セッション状態の永続化を担うリポジトリのインターフェース
type SessionStateRepository interface {
	// SaveSession はセッション状態を保存し、生成されたセッションIDを返す
	SaveSession(ctx context.Context, session *model.SurveySession, ttlHours int) (string, error)

	// GetSession は指定IDのセッション状態を取得する
	GetSession(ctx context.Context, sessionID string) (*model.SurveySession, error)
}
