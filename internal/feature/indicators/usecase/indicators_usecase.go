// Package usecase はテクニカル指標の計算とその取得を実装します。
package usecase

import (
	"context"
	"log/slog"
	"time"

	candle "quant_backend/internal/feature/candles/domain/entity"
	candleusecase "quant_backend/internal/feature/candles/usecase"
	"quant_backend/internal/feature/indicators/domain/entity"
	instrument "quant_backend/internal/feature/instruments/domain/entity"
)

// CandleReader は指標計算に必要なローソク足の読み出しを抽象化します。
type CandleReader interface {
	FindRange(ctx context.Context, symbol string, start, end time.Time) ([]candle.Candle, error)
}

// InstrumentLookup は銘柄の市場区分を解決します。
type InstrumentLookup interface {
	Get(ctx context.Context, symbol string) (instrument.Instrument, error)
}

// IndicatorsUsecase は保存済みのローソク足に指標を付与して返します。
type IndicatorsUsecase struct {
	candles     CandleReader
	instruments InstrumentLookup
	engine      *Engine
	now         func() time.Time
}

// NewIndicatorsUsecase は IndicatorsUsecase の新しいインスタンスを生成します。
func NewIndicatorsUsecase(candles CandleReader, instruments InstrumentLookup, engine *Engine) *IndicatorsUsecase {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &IndicatorsUsecase{candles: candles, instruments: instruments, engine: engine, now: time.Now}
}

// GetIndicators は銘柄の [start, end] の日足に指標を付与して返します。
// 未指定の日付は candles の ResolveRange と同じ規則で補完します。
func (u *IndicatorsUsecase) GetIndicators(ctx context.Context, symbol string, start, end time.Time) ([]entity.IndicatorRow, error) {
	inst, err := u.instruments.Get(ctx, symbol)
	if err != nil {
		return nil, err
	}
	start, end, err = candleusecase.ResolveRange(start, end, u.now())
	if err != nil {
		return nil, err
	}
	series, err := u.candles.FindRange(ctx, inst.Symbol, start, end)
	if err != nil {
		return nil, err
	}
	rows, err := u.engine.Inject(series, inst.Market)
	if err != nil {
		return nil, err
	}
	slog.Debug("indicators computed", "symbol", inst.Symbol, "rows", len(rows), "engine", u.engine.calc.Name())
	return rows, nil
}
