// Package entity defines the domain models for the backtest feature.
package entity

import "time"

// Side is the direction of a fill.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Trade is one simulated fill at a bar's close.
type Trade struct {
	Side       Side
	Date       time.Time
	Price      float64
	Quantity   int64
	Commission float64
}

// EquityPoint is the marked-to-close account value after one bar.
type EquityPoint struct {
	Date  time.Time
	Value float64
}

// Params are the strategy windows of a run. Zero values select the strategy defaults.
type Params struct {
	FastPeriod   int
	SlowPeriod   int
	SignalPeriod int
}

// Result is the immutable outcome of one backtest run.
// MaxDrawdown is a percentage, every other return is a fraction.
type Result struct {
	Symbol   string
	Strategy string
	Params   Params
	Start    time.Time
	End      time.Time

	InitialCash    float64
	Commission     float64
	FinalValue     float64
	TotalReturn    float64
	AnnualReturn   float64
	SharpeRatio    float64
	MaxDrawdown    float64
	MaxDrawdownLen int

	Trades      []Trade
	EquityCurve []EquityPoint
}

// FailedRun is one grid point whose run failed.
type FailedRun struct {
	Params Params
	Err    error
}

// Optimization is the outcome of a parameter grid search over one symbol and strategy.
// The Best pointers refer into Runs and are nil when no run succeeded.
type Optimization struct {
	Symbol       string
	Strategy     string
	Combinations int

	Runs   []Result
	Failed []FailedRun

	BestByReturn *Result
	BestBySharpe *Result
	BestByAnnual *Result
}
