// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"quant_backend/internal/api"
	"quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/candles/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// CandlesUsecase はローソク足データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	GetCandles(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
}

// CandlesHandler はローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc CandlesUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandlesHandler は銘柄コードと期間を受け取り、日足データをJSONで返します。
//
// エンドポイント例:
// GET /candles/:symbol?start=2024-01-01&end=2024-06-30
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	start, end, err := api.DateRange(c)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	candles, err := h.uc.GetCandles(c.Request.Context(), c.Param("symbol"), start, end)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	out := make([]dto.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, dto.CandleResponse{
			Date:     x.Date.UTC().Format(api.DateLayout),
			Open:     x.Open,
			High:     x.High,
			Low:      x.Low,
			Close:    x.Close,
			Volume:   x.Volume,
			Amount:   x.Amount,
			Turnover: x.Turnover,
		})
	}

	c.JSON(http.StatusOK, out)
}
