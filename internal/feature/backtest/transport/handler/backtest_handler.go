// Package handler はbacktestフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"quant_backend/internal/api"
	"quant_backend/internal/feature/backtest/domain/entity"
	"quant_backend/internal/feature/backtest/transport/http/dto"
	"quant_backend/internal/feature/backtest/usecase"
	"quant_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

// BacktestUsecase はバックテスト実行のユースケースインターフェースです。
type BacktestUsecase interface {
	RunBacktest(ctx context.Context, req usecase.Request) (entity.Result, error)
	Optimize(ctx context.Context, req usecase.OptimizeRequest) (entity.Optimization, error)
}

// BacktestHandler はバックテストのHTTPリクエストを処理します。
type BacktestHandler struct {
	uc BacktestUsecase
}

// NewBacktestHandler は新しい BacktestHandler を作成します。
func NewBacktestHandler(uc BacktestUsecase) *BacktestHandler {
	return &BacktestHandler{uc: uc}
}

// Run は POST /backtests を処理します。
func (h *BacktestHandler) Run(c *gin.Context) {
	var body dto.BacktestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		api.RespondError(c, apperr.Configf("invalid request body: %v", err))
		return
	}
	start, err := api.ParseDate(body.Start, "start")
	if err != nil {
		api.RespondError(c, err)
		return
	}
	end, err := api.ParseDate(body.End, "end")
	if err != nil {
		api.RespondError(c, err)
		return
	}

	res, err := h.uc.RunBacktest(c.Request.Context(), usecase.Request{
		Symbol:      body.Symbol,
		Strategy:    body.Strategy,
		Start:       start,
		End:         end,
		InitialCash: body.InitialCash,
		Commission:  body.Commission,
		Params: entity.Params{
			FastPeriod:   body.Params.FastPeriod,
			SlowPeriod:   body.Params.SlowPeriod,
			SignalPeriod: body.Params.SignalPeriod,
		},
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(res))
}

// Optimize は POST /backtests/optimize を処理します。
func (h *BacktestHandler) Optimize(c *gin.Context) {
	var body dto.OptimizeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		api.RespondError(c, apperr.Configf("invalid request body: %v", err))
		return
	}
	start, err := api.ParseDate(body.Start, "start")
	if err != nil {
		api.RespondError(c, err)
		return
	}
	end, err := api.ParseDate(body.End, "end")
	if err != nil {
		api.RespondError(c, err)
		return
	}

	res, err := h.uc.Optimize(c.Request.Context(), usecase.OptimizeRequest{
		Symbol:      body.Symbol,
		Strategy:    body.Strategy,
		Start:       start,
		End:         end,
		InitialCash: body.InitialCash,
		Commission:  body.Commission,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToOptimizeResponse(res))
}

// ToResponse は結果をレスポンスDTOに変換します。
func ToResponse(r entity.Result) dto.BacktestResponse {
	out := dto.BacktestResponse{
		Symbol:   r.Symbol,
		Strategy: r.Strategy,
		Params:         paramsDTO(r.Params),
		Start:          r.Start.Format(api.DateLayout),
		End:            r.End.Format(api.DateLayout),
		InitialCash:    r.InitialCash,
		Commission:     r.Commission,
		FinalValue:     r.FinalValue,
		TotalReturn:    r.TotalReturn,
		AnnualReturn:   r.AnnualReturn,
		SharpeRatio:    r.SharpeRatio,
		MaxDrawdown:    r.MaxDrawdown,
		MaxDrawdownLen: r.MaxDrawdownLen,
		Trades:         make([]dto.TradeDTO, 0, len(r.Trades)),
		EquityCurve:    make([]dto.EquityPointDTO, 0, len(r.EquityCurve)),
	}
	for _, t := range r.Trades {
		out.Trades = append(out.Trades, dto.TradeDTO{
			Side:       string(t.Side),
			Date:       t.Date.Format(api.DateLayout),
			Price:      t.Price,
			Quantity:   t.Quantity,
			Commission: t.Commission,
		})
	}
	for _, p := range r.EquityCurve {
		out.EquityCurve = append(out.EquityCurve, dto.EquityPointDTO{Date: p.Date.Format(api.DateLayout), Value: p.Value})
	}
	return out
}

// ToOptimizeResponse は最適化結果をレスポンスDTOに変換します。
func ToOptimizeResponse(o entity.Optimization) dto.OptimizeResponse {
	out := dto.OptimizeResponse{
		Symbol:       o.Symbol,
		Strategy:     o.Strategy,
		Combinations: o.Combinations,
		ValidResults: len(o.Runs),
		BestByReturn: runDTO(o.BestByReturn),
		BestBySharpe: runDTO(o.BestBySharpe),
		BestByAnnual: runDTO(o.BestByAnnual),
		Runs:         make([]dto.OptimizationRunDTO, 0, len(o.Runs)),
		Failed:       make([]dto.FailedRunDTO, 0, len(o.Failed)),
	}
	for i := range o.Runs {
		out.Runs = append(out.Runs, *runDTO(&o.Runs[i]))
	}
	for _, f := range o.Failed {
		out.Failed = append(out.Failed, dto.FailedRunDTO{Params: paramsDTO(f.Params), Error: f.Err.Error()})
	}
	return out
}

func runDTO(r *entity.Result) *dto.OptimizationRunDTO {
	if r == nil {
		return nil
	}
	return &dto.OptimizationRunDTO{
		Params:       paramsDTO(r.Params),
		FinalValue:   r.FinalValue,
		TotalReturn:  r.TotalReturn,
		AnnualReturn: r.AnnualReturn,
		SharpeRatio:  r.SharpeRatio,
		MaxDrawdown:  r.MaxDrawdown,
		Trades:       len(r.Trades),
	}
}

func paramsDTO(p entity.Params) dto.ParamsDTO {
	return dto.ParamsDTO{FastPeriod: p.FastPeriod, SlowPeriod: p.SlowPeriod, SignalPeriod: p.SignalPeriod}
}
