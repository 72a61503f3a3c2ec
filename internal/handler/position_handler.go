package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "poi-radar/internal/domain/model"
	"poi-radar/internal/usecase"
	"poi-radar/model"
)

// PositionHandler 位置更新と散策セッションに関するHTTPハンドラー
type PositionHandler struct {
	proximityUseCase usecase.ProximityUseCase
}

// NewPositionHandler PositionHandlerの新しいインスタンスを作成
func NewPositionHandler(proximityUseCase usecase.ProximityUseCase) *PositionHandler {
	return &PositionHandler{
		proximityUseCase: proximityUseCase,
	}
}

// PostPosition POST /position - 位置更新1件を評価して発火した通知を返す
func (h *PositionHandler) PostPosition(c *gin.Context) {
	var req model.PositionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	fix := domain.PositionFix{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if req.TimestampMillis > 0 {
		fix.Timestamp = time.UnixMilli(req.TimestampMillis)
	}

	events, err := h.proximityUseCase.HandlePositionUpdate(c.Request.Context(), fix)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Failed to evaluate position: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.NotificationsResponse{Notifications: events})
}

// ResetSession POST /session/reset - 散策セッションのリセット
func (h *PositionHandler) ResetSession(c *gin.Context) {
	if err := h.proximityUseCase.ResetSession(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to reset session: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// SaveSession POST /session/save - セッション状態の保存
func (h *PositionHandler) SaveSession(c *gin.Context) {
	sessionID, err := h.proximityUseCase.SaveSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "session_unavailable",
			"message": "Failed to save session: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, model.SessionResponse{SessionID: sessionID})
}

// RestoreSession POST /session/restore/:id - 保存済みセッションの復元
func (h *PositionHandler) RestoreSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "Session ID is required",
		})
		return
	}

	if err := h.proximityUseCase.RestoreSession(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Failed to restore session: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.SessionResponse{SessionID: sessionID})
}
