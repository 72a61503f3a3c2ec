package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "poi-radar/internal/domain/model"
	"poi-radar/internal/usecase"
	"poi-radar/model"
)

// defaultNearbyRadiusMeters 周辺検索の距離上限のデフォルト値
const defaultNearbyRadiusMeters = 500.0

// POIsHandler POIの照会・管理に関するHTTPハンドラー
type POIsHandler struct {
	importUseCase    usecase.ImportUseCase
	proximityUseCase usecase.ProximityUseCase
	poisUseCase      usecase.POIsUseCase
}

// NewPOIsHandler POIsHandlerの新しいインスタンスを作成
func NewPOIsHandler(importUseCase usecase.ImportUseCase, proximityUseCase usecase.ProximityUseCase, poisUseCase usecase.POIsUseCase) *POIsHandler {
	return &POIsHandler{
		importUseCase:    importUseCase,
		proximityUseCase: proximityUseCase,
		poisUseCase:      poisUseCase,
	}
}

// GetPOIs GET /pois - 登録済みPOIの一覧を取得
func (h *POIsHandler) GetPOIs(c *gin.Context) {
	pois, err := h.poisUseCase.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get POIs: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.POIListResponse{POIs: pois})
}

// GetNearby GET /pois/nearby - 指定座標の周辺POIを距離の昇順で取得
func (h *POIsHandler) GetNearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "Invalid lat value",
		})
		return
	}

	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "Invalid lng value",
		})
		return
	}

	radius := defaultNearbyRadiusMeters
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "Invalid radius value",
			})
			return
		}
	}

	nearby, err := h.proximityUseCase.Nearby(c.Request.Context(), lat, lng, radius)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to search nearby POIs: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.NotificationsResponse{Notifications: nearby})
}

// CreatePOI POST /pois - 手動POIの作成
func (h *POIsHandler) CreatePOI(c *gin.Context) {
	var req model.CreateManualPOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	poi, err := h.importUseCase.CreateManualPOI(c.Request.Context(), req.Name, req.Description,
		domain.Location{Latitude: req.Latitude, Longitude: req.Longitude}, req.NotificationRadius)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Failed to create POI: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, poi)
}

// DeleteSource DELETE /pois/source/:source - ソース単位の一括削除
func (h *POIsHandler) DeleteSource(c *gin.Context) {
	source := domain.POISource(c.Param("source"))
	if !source.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "Unknown source: " + c.Param("source"),
		})
		return
	}

	deleted, err := h.importUseCase.DeleteSource(c.Request.Context(), source)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to delete POIs: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.DeleteSourceResponse{
		Source:       source,
		DeletedCount: deleted,
	})
}

// GetStats GET /pois/stats - 統計情報の取得
func (h *POIsHandler) GetStats(c *gin.Context) {
	stats, err := h.importUseCase.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to get stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.StatsResponse{
		TotalCount:   stats.TotalCount,
		VisitedCount: stats.VisitedCount,
	})
}

// MarkVisited POST /pois/:id/visited - POIを訪問済みにする
func (h *POIsHandler) MarkVisited(c *gin.Context) {
	poiID := c.Param("id")
	if poiID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_parameter",
			"message": "POI ID is required",
		})
		return
	}

	if err := h.proximityUseCase.MarkVisited(c.Request.Context(), poiID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Failed to mark POI as visited: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "visited", "poi_id": poiID})
}
