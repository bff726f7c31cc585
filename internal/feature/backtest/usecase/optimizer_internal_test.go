package usecase

import (
	"context"
	"testing"
	"time"

	"quant_backend/internal/feature/backtest/domain/entity"
	candle "quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/indicators/calc"
	instrument "quant_backend/internal/feature/instruments/domain/entity"
	"quant_backend/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"
)

type stubCandles []candle.Candle

func (s stubCandles) FindRange(context.Context, string, time.Time, time.Time) ([]candle.Candle, error) {
	return s, nil
}

type stubInstruments struct{}

func (stubInstruments) Get(_ context.Context, symbol string) (instrument.Instrument, error) {
	return instrument.Instrument{Symbol: symbol, Market: instrument.MarketUS}, nil
}

func newGridUsecase(grids map[string]ParamGrid) *BacktestUsecase {
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	closes := []float64{110, 110, 110, 110, 90, 90, 100, 120, 120, 150, 60, 60}
	series := make(stubCandles, len(closes))
	for i, c := range closes {
		series[i] = candle.Candle{Symbol: "SPY", Date: d.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1}
	}
	u := NewBacktestUsecase(series, stubInstruments{}, calc.Manual())
	u.grids = grids
	return u
}

func TestOptimize_FailedCombinationIsIsolated(t *testing.T) {
	t.Parallel()

	u := newGridUsecase(map[string]ParamGrid{
		StrategyMACD: {Fast: []int{2}, Slow: []int{4}, Signal: []int{-1, 3}},
	})
	got, err := u.Optimize(context.Background(), OptimizeRequest{Symbol: "SPY", Strategy: "macd", Commission: null.Float64From(0)})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Combinations)
	require.Len(t, got.Failed, 1)
	assert.Equal(t, entity.Params{FastPeriod: 2, SlowPeriod: 4, SignalPeriod: -1}, got.Failed[0].Params)
	assert.ErrorIs(t, got.Failed[0].Err, apperr.ErrConfiguration)
	require.Len(t, got.Runs, 1)
	assert.Same(t, &got.Runs[0], got.BestByReturn)
}

func TestOptimize_AllCombinationsFail(t *testing.T) {
	t.Parallel()

	u := newGridUsecase(map[string]ParamGrid{
		StrategyMACD: {Fast: []int{2}, Slow: []int{4}, Signal: []int{-1}},
	})
	got, err := u.Optimize(context.Background(), OptimizeRequest{Symbol: "SPY", Strategy: "macd"})
	require.NoError(t, err)
	assert.Empty(t, got.Runs)
	assert.Len(t, got.Failed, 1)
	assert.Nil(t, got.BestByReturn)
	assert.Nil(t, got.BestBySharpe)
	assert.Nil(t, got.BestByAnnual)
}

func TestBest_TiesKeepGridOrder(t *testing.T) {
	t.Parallel()

	runs := []entity.Result{
		{Params: entity.Params{FastPeriod: 1}, TotalReturn: 0.1},
		{Params: entity.Params{FastPeriod: 2}, TotalReturn: 0.1, Trades: []entity.Trade{{}}},
		{Params: entity.Params{FastPeriod: 3}, TotalReturn: 0.1, Trades: []entity.Trade{{}}},
	}
	got := best(runs, func(a, b entity.Result) bool {
		if a.TotalReturn != b.TotalReturn {
			return a.TotalReturn > b.TotalReturn
		}
		return len(a.Trades) > len(b.Trades)
	})
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Params.FastPeriod)
	assert.Nil(t, best(nil, func(a, b entity.Result) bool { return true }))
}
