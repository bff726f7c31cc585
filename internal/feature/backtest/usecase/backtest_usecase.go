// Package usecase はバックテストの実行と成績評価を実装します。
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"quant_backend/internal/feature/backtest/domain/entity"
	candle "quant_backend/internal/feature/candles/domain/entity"
	candleusecase "quant_backend/internal/feature/candles/usecase"
	"quant_backend/internal/feature/indicators/calc"
	instrument "quant_backend/internal/feature/instruments/domain/entity"
	"quant_backend/internal/shared/apperr"

	"github.com/volatiletech/null"
)

// 未指定の場合の初期資金と手数料率です。
const (
	DefaultInitialCash = 100000.0
	DefaultCommission  = 0.001
)

// CandleReader はバックテスト対象のローソク足の読み出しを抽象化します。
type CandleReader interface {
	FindRange(ctx context.Context, symbol string, start, end time.Time) ([]candle.Candle, error)
}

// InstrumentLookup は銘柄の存在確認に使います。
type InstrumentLookup interface {
	Get(ctx context.Context, symbol string) (instrument.Instrument, error)
}

// Request は1回のバックテストの入力です。
// InitialCash と Commission が未設定 (Valid=false) の場合は既定値を使います。
type Request struct {
	Symbol      string
	Strategy    string
	Start       time.Time
	End         time.Time
	InitialCash null.Float64
	Commission  null.Float64
	Params      entity.Params
}

// BacktestUsecase は保存済みの日足でバックテストを実行します。
type BacktestUsecase struct {
	candles     CandleReader
	instruments InstrumentLookup
	calc        calc.Calculator
	grids       map[string]ParamGrid
	now         func() time.Time
}

// NewBacktestUsecase は BacktestUsecase の新しいインスタンスを生成します。
// c が nil の場合はプロセス既定の計算器を使います。
func NewBacktestUsecase(candles CandleReader, instruments InstrumentLookup, c calc.Calculator) *BacktestUsecase {
	if c == nil {
		c = calc.Default()
	}
	return &BacktestUsecase{candles: candles, instruments: instruments, calc: c, grids: ParamGrids, now: time.Now}
}

// RunBacktest は戦略・銘柄・期間を検証し、シミュレーションと成績計算を行います。
// 未知の戦略は ErrConfiguration、未登録の銘柄は ErrNotFound、期間内に日足がない場合は ErrComputation です。
func (u *BacktestUsecase) RunBacktest(ctx context.Context, req Request) (entity.Result, error) {
	strategy, err := NewStrategy(normalizeStrategy(req.Strategy), req.Params)
	if err != nil {
		return entity.Result{}, err
	}
	in, err := u.prepare(ctx, req.Symbol, req.Start, req.End, req.InitialCash, req.Commission)
	if err != nil {
		return entity.Result{}, err
	}
	res, err := u.run(in, strategy)
	if err != nil {
		return entity.Result{}, err
	}

	slog.Info("backtest finished",
		"symbol", res.Symbol,
		"strategy", res.Strategy,
		"bars", len(in.series),
		"trades", len(res.Trades),
		"final_value", res.FinalValue,
	)
	return res, nil
}

func normalizeStrategy(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// prepared は検証済みの資金・手数料と、読み込んだ日足です。
type prepared struct {
	symbol     string
	cash       float64
	commission float64
	series     []candle.Candle
}

// prepare は戦略に依存しない入力を検証し、期間内の日足を読み込みます。
func (u *BacktestUsecase) prepare(ctx context.Context, symbol string, start, end time.Time, initialCash, commission null.Float64) (prepared, error) {
	cash := initialCash.Float64
	if !initialCash.Valid {
		cash = DefaultInitialCash
	}
	if cash <= 0 {
		return prepared{}, apperr.Configf("initial_cash must be positive, got %v", cash)
	}
	rate := commission.Float64
	if !commission.Valid {
		rate = DefaultCommission
	}
	if rate < 0 || rate >= 1 {
		return prepared{}, apperr.Configf("commission must be in [0, 1), got %v", rate)
	}

	inst, err := u.instruments.Get(ctx, symbol)
	if err != nil {
		return prepared{}, err
	}
	start, end, err = candleusecase.ResolveRange(start, end, u.now())
	if err != nil {
		return prepared{}, err
	}
	series, err := u.candles.FindRange(ctx, inst.Symbol, start, end)
	if err != nil {
		return prepared{}, err
	}
	if len(series) == 0 {
		return prepared{}, apperr.Computef("no candles for %s between %s and %s",
			inst.Symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	if err := candle.ValidateOrder(series); err != nil {
		return prepared{}, apperr.Computef("unordered series for %s: %v", inst.Symbol, err)
	}
	return prepared{symbol: inst.Symbol, cash: cash, commission: rate, series: series}, nil
}

// run は読み込み済みの日足で1つの戦略をシミュレーションし、成績を計算します。
func (u *BacktestUsecase) run(in prepared, strategy Strategy) (entity.Result, error) {
	trades, curve, err := Simulate(in.series, strategy, u.calc, in.cash, in.commission)
	if err != nil {
		return entity.Result{}, err
	}
	m, err := Analyze(curve, in.cash)
	if err != nil {
		return entity.Result{}, err
	}
	return entity.Result{
		Symbol:         in.symbol,
		Strategy:       strategy.Name(),
		Params:         strategy.Params(),
		Start:          in.series[0].Date,
		End:            in.series[len(in.series)-1].Date,
		InitialCash:    in.cash,
		Commission:     in.commission,
		FinalValue:     m.FinalValue,
		TotalReturn:    m.TotalReturn,
		AnnualReturn:   m.AnnualReturn,
		SharpeRatio:    m.SharpeRatio,
		MaxDrawdown:    m.MaxDrawdown,
		MaxDrawdownLen: m.MaxDrawdownLen,
		Trades:         trades,
		EquityCurve:    curve,
	}, nil
}
