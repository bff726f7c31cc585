package handler

import (
	"context"
	"net/http"

	"quant_backend/internal/api"
	"quant_backend/internal/feature/instruments/domain/entity"
	"quant_backend/internal/feature/instruments/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// InstrumentUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type InstrumentUsecase interface {
	ListActiveInstruments(ctx context.Context) ([]entity.Instrument, error)
}

// InstrumentHandler は銘柄情報に関するHTTPリクエストを処理します。
type InstrumentHandler struct {
	uc InstrumentUsecase
}

// NewInstrumentHandler は新しい InstrumentHandler を作成します。
func NewInstrumentHandler(uc InstrumentUsecase) *InstrumentHandler {
	return &InstrumentHandler{uc: uc}
}

// List は有効な銘柄の一覧をsort_key順に返します。
func (h *InstrumentHandler) List(c *gin.Context) {
	instruments, err := h.uc.ListActiveInstruments(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	out := make([]dto.InstrumentItem, 0, len(instruments))
	for _, in := range instruments {
		out = append(out, dto.InstrumentItem{
			Symbol:      in.Symbol,
			Market:      string(in.Market),
			Name:        in.Name,
			Category:    in.Category,
			TradingRule: in.TradingRule,
		})
	}
	c.JSON(http.StatusOK, out)
}
