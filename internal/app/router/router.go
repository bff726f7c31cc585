package router

import (
	backtesthandler "quant_backend/internal/feature/backtest/transport/handler"
	candlehandler "quant_backend/internal/feature/candles/transport/handler"
	indicatorhandler "quant_backend/internal/feature/indicators/transport/handler"
	instrumenthandler "quant_backend/internal/feature/instruments/transport/handler"
	"quant_backend/internal/platform/http/handler"
	"quant_backend/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handlers はルーターに登録するハンドラーの集合です。
type Handlers struct {
	Health      gin.HandlerFunc
	Instruments *instrumenthandler.InstrumentHandler
	Candles     *candlehandler.CandlesHandler
	Indicators  *indicatorhandler.IndicatorHandler
	Backtests   *backtesthandler.BacktestHandler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware())

	// 導通確認用
	health := h.Health
	if health == nil {
		health = handler.Health(nil)
	}
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	r.GET("/instruments", h.Instruments.List)
	r.GET("/candles/:symbol", h.Candles.GetCandlesHandler)
	r.GET("/indicators/:symbol", h.Indicators.GetIndicators)
	r.POST("/backtests", h.Backtests.Run)
	r.POST("/backtests/optimize", h.Backtests.Optimize)

	return r
}
