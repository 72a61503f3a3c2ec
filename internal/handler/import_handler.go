package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "poi-radar/internal/domain/model"
	"poi-radar/internal/usecase"
	"poi-radar/model"
)

// defaultOverpassRadiusMeters Overpass検索の半径のデフォルト値
const defaultOverpassRadiusMeters = 1000

// ImportHandler POI取り込みに関するHTTPハンドラー
type ImportHandler struct {
	importUseCase usecase.ImportUseCase
}

// NewImportHandler ImportHandlerの新しいインスタンスを作成
func NewImportHandler(importUseCase usecase.ImportUseCase) *ImportHandler {
	return &ImportHandler{
		importUseCase: importUseCase,
	}
}

// ImportGPX POST /pois/import/gpx - GPXファイルの取り込み（ボディはGPX XML）
func (h *ImportHandler) ImportGPX(c *gin.Context) {
	count, err := h.importUseCase.ImportGPX(c.Request.Context(), c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "import_failed",
			"message": "Failed to import GPX: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, model.ImportResponse{
		Source:        domain.SourceGPX,
		ImportedCount: count,
	})
}

// ImportBikeShare POST /pois/import/bikeshare - バイクシェアGeoJSONの取り込み
func (h *ImportHandler) ImportBikeShare(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Failed to read request body: " + err.Error(),
		})
		return
	}

	count, err := h.importUseCase.ImportBikeShareGeoJSON(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "import_failed",
			"message": "Failed to import GeoJSON: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, model.ImportResponse{
		Source:        domain.SourceBikeShareGeoJSON,
		ImportedCount: count,
	})
}

// ImportOverpass POST /pois/import/overpass - Overpass APIからの取り込み
func (h *ImportHandler) ImportOverpass(c *gin.Context) {
	var req model.ImportOverpassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	radius := req.RadiusMeters
	if radius <= 0 {
		radius = defaultOverpassRadiusMeters
	}

	count, err := h.importUseCase.ImportOverpass(c.Request.Context(), req.Latitude, req.Longitude, radius)
	if err != nil {
		// 通信失敗は「0件」と区別して502で返す
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "upstream_error",
			"message": "Failed to query Overpass API: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, model.ImportResponse{
		Source:        domain.SourceOverpass,
		ImportedCount: count,
	})
}
