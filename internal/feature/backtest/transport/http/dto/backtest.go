package dto

import "github.com/volatiletech/null"

// BacktestRequest は POST /backtests のリクエストボディです。
// 未指定の initial_cash と commission は既定値になります。
type BacktestRequest struct {
	Symbol      string       `json:"symbol" binding:"required"`
	Strategy    string       `json:"strategy" binding:"required"`
	Start       string       `json:"start"`
	End         string       `json:"end"`
	InitialCash null.Float64 `json:"initial_cash"`
	Commission  null.Float64 `json:"commission"`
	Params      ParamsDTO    `json:"params"`
}

// ParamsDTO は戦略のウィンドウ設定です。0 は戦略の既定値を意味します。
type ParamsDTO struct {
	FastPeriod   int `json:"fast_period,omitempty"`
	SlowPeriod   int `json:"slow_period,omitempty"`
	SignalPeriod int `json:"signal_period,omitempty"`
}

// TradeDTO は約定1件です。
type TradeDTO struct {
	Side       string  `json:"side"`
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	Quantity   int64   `json:"quantity"`
	Commission float64 `json:"commission"`
}

// EquityPointDTO は資産曲線の1点です。
type EquityPointDTO struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// BacktestResponse はバックテスト結果のレスポンスDTOです。
type BacktestResponse struct {
	Symbol         string           `json:"symbol"`
	Strategy       string           `json:"strategy"`
	Params         ParamsDTO        `json:"params"`
	Start          string           `json:"start"`
	End            string           `json:"end"`
	InitialCash    float64          `json:"initial_cash"`
	Commission     float64          `json:"commission"`
	FinalValue     float64          `json:"final_value"`
	TotalReturn    float64          `json:"total_return"`
	AnnualReturn   float64          `json:"annual_return"`
	SharpeRatio    float64          `json:"sharpe_ratio"`
	MaxDrawdown    float64          `json:"max_drawdown"`
	MaxDrawdownLen int              `json:"max_drawdown_len"`
	Trades         []TradeDTO       `json:"trades"`
	EquityCurve    []EquityPointDTO `json:"equity_curve"`
}

// OptimizeRequest は POST /backtests/optimize のリクエストボディです。
type OptimizeRequest struct {
	Symbol      string       `json:"symbol" binding:"required"`
	Strategy    string       `json:"strategy" binding:"required"`
	Start       string       `json:"start"`
	End         string       `json:"end"`
	InitialCash null.Float64 `json:"initial_cash"`
	Commission  null.Float64 `json:"commission"`
}

// OptimizationRunDTO はグリッドの1点の成績です。取引履歴と資産曲線は含めません。
type OptimizationRunDTO struct {
	Params       ParamsDTO `json:"params"`
	FinalValue   float64   `json:"final_value"`
	TotalReturn  float64   `json:"total_return"`
	AnnualReturn float64   `json:"annual_return"`
	SharpeRatio  float64   `json:"sharpe_ratio"`
	MaxDrawdown  float64   `json:"max_drawdown"`
	Trades       int       `json:"trades"`
}

// FailedRunDTO は失敗した組み合わせです。
type FailedRunDTO struct {
	Params ParamsDTO `json:"params"`
	Error  string    `json:"error"`
}

// OptimizeResponse はパラメータ最適化の結果です。成功した組み合わせがない場合 best_* は null です。
type OptimizeResponse struct {
	Symbol       string               `json:"symbol"`
	Strategy     string               `json:"strategy"`
	Combinations int                  `json:"combinations"`
	ValidResults int                  `json:"valid_results"`
	BestByReturn *OptimizationRunDTO  `json:"best_by_return"`
	BestBySharpe *OptimizationRunDTO  `json:"best_by_sharpe"`
	BestByAnnual *OptimizationRunDTO  `json:"best_by_annual"`
	Runs         []OptimizationRunDTO `json:"runs"`
	Failed       []FailedRunDTO       `json:"failed"`
}
