package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"DensityMap-App/internal/domain/model"
	"DensityMap-App/internal/usecase"
)

// DensityHandler は密度集計APIのハンドラー
type DensityHandler struct {
	densityUseCase usecase.DensityUseCase
}

// NewDensityHandler は新しいDensityHandlerインスタンスを作成
func NewDensityHandler(densityUseCase usecase.DensityUseCase) *DensityHandler {
	return &DensityHandler{
		densityUseCase: densityUseCase,
	}
}

// PostDensityCompute は密度集計を実行するエンドポイント
// POST /densities/compute
func (h *DensityHandler) PostDensityCompute(c *gin.Context) {
	var req model.DensityComputeRequest

	// リクエストボディのバインド
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	// バリデーション
	if err := h.validateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	// UseCase呼び出し
	response, err := h.densityUseCase.ComputeDensity(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "密度集計の実行に失敗しました",
			"details": err.Error(),
		})
		return
	}

	// 成功レスポンス
	c.JSON(http.StatusOK, response)
}

// validateRequest はリクエストの詳細バリデーションを行う
func (h *DensityHandler) validateRequest(req *model.DensityComputeRequest) error {
	// 解像度の範囲チェック
	if err := model.ValidateResolution(req.Resolution); err != nil {
		return err
	}

	// モードのチェック（省略時はagg）
	if req.Mode != "" && req.Mode != model.ModeAgg {
		return &ValidationError{Field: "mode", Message: "modeは'agg'を指定してください"}
	}

	// 集計方法のチェック（省略時はcount）
	if req.Reduction != "" && req.Reduction != model.ReductionCount && req.Reduction != model.ReductionDistinctCount {
		return &ValidationError{Field: "reduction", Message: "reductionは'count'または'distinct_count'を指定してください"}
	}

	// 入力ソースのチェック
	source := req.Source
	if source == "" {
		source = model.SourceInline
	}
	switch source {
	case model.SourceInline:
		// inlineソースの座標範囲チェック
		for _, point := range req.Points {
			if point.Latitude < -90 || point.Latitude > 90 {
				return &ValidationError{Field: "points", Message: "緯度は-90から90の範囲で指定してください"}
			}
			if point.Longitude < -180 || point.Longitude > 180 {
				return &ValidationError{Field: "points", Message: "経度は-180から180の範囲で指定してください"}
			}
		}
	case model.SourceGBFS:
		// feed_urlsは省略可（デフォルトフィードを使用）
	default:
		return &ValidationError{Field: "source", Message: "sourceは'inline'または'gbfs'を指定してください"}
	}

	// TTLのチェック
	if req.TTLHours < 0 {
		return &ValidationError{Field: "ttl_hours", Message: "ttl_hoursは正の整数で指定してください"}
	}

	return nil
}

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// GetDensitySnapshot は特定のスナップショットを取得するエンドポイント
// GET /densities/:id
func (h *DensityHandler) GetDensitySnapshot(c *gin.Context) {
	snapshotID := c.Param("id")
	if snapshotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "snapshot_idが指定されていません",
		})
		return
	}

	// UseCaseから取得
	snapshot, err := h.densityUseCase.GetDensitySnapshot(c.Request.Context(), snapshotID)
	if err != nil {
		// エラーメッセージから404か500かを判定
		if strings.Contains(err.Error(), "見つかりません") || strings.Contains(err.Error(), "有効期限切れ") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "密度スナップショットが見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "密度スナップショットの取得に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	// 成功レスポンス
	c.JSON(http.StatusOK, snapshot)
}

// GetDensityGeoJSON はスナップショットをGeoJSONとして取得するエンドポイント
// GET /densities/:id/geojson
func (h *DensityHandler) GetDensityGeoJSON(c *gin.Context) {
	snapshotID := c.Param("id")
	if snapshotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "snapshot_idが指定されていません",
		})
		return
	}

	data, err := h.densityUseCase.GetDensityGeoJSON(c.Request.Context(), snapshotID)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") || strings.Contains(err.Error(), "有効期限切れ") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "密度スナップショットが見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "GeoJSONの生成に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.Data(http.StatusOK, "application/geo+json", data)
}
