// Package handler はindicatorsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"quant_backend/internal/api"
	"quant_backend/internal/feature/indicators/domain/entity"
	"quant_backend/internal/feature/indicators/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// IndicatorsUsecase は指標取得のユースケースインターフェースです。
type IndicatorsUsecase interface {
	GetIndicators(ctx context.Context, symbol string, start, end time.Time) ([]entity.IndicatorRow, error)
}

// IndicatorHandler は指標のHTTPリクエストを処理します。
type IndicatorHandler struct {
	uc IndicatorsUsecase
}

// NewIndicatorHandler は新しい IndicatorHandler を作成します。
func NewIndicatorHandler(uc IndicatorsUsecase) *IndicatorHandler {
	return &IndicatorHandler{uc: uc}
}

// GetIndicators は GET /indicators/:symbol?start&end を処理します。
// 計算できない値は null で返します。
func (h *IndicatorHandler) GetIndicators(c *gin.Context) {
	start, end, err := api.DateRange(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	rows, err := h.uc.GetIndicators(c.Request.Context(), c.Param("symbol"), start, end)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	out := make([]dto.IndicatorResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.IndicatorResponse{Date: r.Date.UTC().Format(api.DateLayout), IndicatorRow: r})
	}
	c.JSON(http.StatusOK, out)
}
