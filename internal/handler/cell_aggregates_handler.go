package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"DensityMap-App/internal/application"
)

// CellAggregatesHandler は永続化済みセル集計APIのハンドラー
type CellAggregatesHandler struct {
	densitiesService application.DensitiesService
}

// NewCellAggregatesHandler は新しいCellAggregatesHandlerインスタンスを作成
func NewCellAggregatesHandler(densitiesService application.DensitiesService) *CellAggregatesHandler {
	return &CellAggregatesHandler{
		densitiesService: densitiesService,
	}
}

// PostPersistSnapshot はスナップショットをデータベースに永続化するエンドポイント
// POST /densities/:id/persist
func (h *CellAggregatesHandler) PostPersistSnapshot(c *gin.Context) {
	snapshotID := c.Param("id")

	cellCount, err := h.densitiesService.PersistSnapshot(c.Request.Context(), snapshotID)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") || strings.Contains(err.Error(), "有効期限切れ") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "密度スナップショットが見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "スナップショットの永続化に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"snapshot_id": snapshotID,
		"cell_count":  cellCount,
	})
}

// GetCellsByBoundingBox は境界ボックス内のセル集計を取得するエンドポイント
// GET /densities/:id/cells?min_lng=...&min_lat=...&max_lng=...&max_lat=...
func (h *CellAggregatesHandler) GetCellsByBoundingBox(c *gin.Context) {
	snapshotID := c.Param("id")

	minLng, err1 := strconv.ParseFloat(c.Query("min_lng"), 64)
	minLat, err2 := strconv.ParseFloat(c.Query("min_lat"), 64)
	maxLng, err3 := strconv.ParseFloat(c.Query("max_lng"), 64)
	maxLat, err4 := strconv.ParseFloat(c.Query("max_lat"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "min_lng, min_lat, max_lng, max_latをすべて数値で指定してください",
		})
		return
	}

	cells, err := h.densitiesService.GetCellsByBoundingBox(c.Request.Context(), snapshotID, minLng, minLat, maxLng, maxLat)
	if err != nil {
		if strings.Contains(err.Error(), "検証失敗") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "バリデーションエラー",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "セル集計の取得に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot_id": snapshotID,
		"cells":       cells,
	})
}

// DeleteSnapshot は永続化済みセル集計を削除するエンドポイント
// DELETE /densities/:id/cells
func (h *CellAggregatesHandler) DeleteSnapshot(c *gin.Context) {
	snapshotID := c.Param("id")

	if err := h.densitiesService.DeleteSnapshot(c.Request.Context(), snapshotID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "セル集計の削除に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"snapshot_id": snapshotID,
	})
}
