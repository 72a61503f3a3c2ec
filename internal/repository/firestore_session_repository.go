package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"poi-radar/internal/domain/model"
	"poi-radar/internal/domain/repository"
)

// sessionsCollection 散策セッションを保存するFirestoreコレクション名
const sessionsCollection = "surveySessions"

// FirestoreSessionRepository Firestoreを使用した散策セッション状態リポジトリ
// 近接エンジンのスナップショットをTTL付きで保存し、
// アプリ再起動後のセッション継続を可能にする
type FirestoreSessionRepository struct {
	client *firestore.Client
}

// NewFirestoreSessionRepository FirestoreSessionRepositoryの新しいインスタンスを作成
func NewFirestoreSessionRepository(client *firestore.Client) repository.SessionStateRepository {
	return &FirestoreSessionRepository{
		client: client,
	}
}

// SaveSession はセッション状態を保存し、生成されたセッションIDを返す
func (r *FirestoreSessionRepository) SaveSession(ctx context.Context, session *model.SurveySession, ttlHours int) (string, error) {
	if session == nil {
		return "", fmt.Errorf("保存対象のセッションがありません")
	}

	sessionID := session.ID
	if sessionID == "" {
		sessionID = fmt.Sprintf("session_%s", uuid.New().String())
	}

	session.ID = sessionID
	session.SavedAt = time.Now()
	session.ExpiresAt = session.SavedAt.Add(time.Duration(ttlHours) * time.Hour)

	_, err := r.client.Collection(sessionsCollection).Doc(sessionID).Set(ctx, session)
	if err != nil {
		log.Printf("❌ Failed to save survey session %s: %v", sessionID, err)
		return "", fmt.Errorf("セッション状態の保存に失敗しました: %w", err)
	}

	log.Printf("✅ Survey session saved: %s (expires in %d hours)", sessionID, ttlHours)
	return sessionID, nil
}

// GetSession は指定IDのセッション状態を取得する（期限切れは未発見扱い）
func (r *FirestoreSessionRepository) GetSession(ctx context.Context, sessionID string) (*model.SurveySession, error) {
	doc, err := r.client.Collection(sessionsCollection).Doc(sessionID).Get(ctx)
	if err != nil {
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, fmt.Errorf("セッションが見つかりません（有効期限切れまたは無効なID）: %s", sessionID)
		}
		return nil, fmt.Errorf("セッション状態の取得に失敗しました: %w", err)
	}

	var session model.SurveySession
	if err := doc.DataTo(&session); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		return nil, fmt.Errorf("セッションの有効期限が切れています: %s", sessionID)
	}

	log.Printf("✅ Survey session retrieved: %s", sessionID)
	return &session, nil
}
