package usecase

import (
	"context"
	"log/slog"
	"time"

	"quant_backend/internal/feature/backtest/domain/entity"
	"quant_backend/internal/shared/apperr"

	"github.com/volatiletech/null"
)

// ParamGrid は戦略ごとに探索するウィンドウの候補です。組み合わせは各軸の直積です。
type ParamGrid struct {
	Fast   []int
	Slow   []int
	Signal []int // 空のときシグナル期間を使わない戦略
}

// ParamGrids は戦略名ごとの探索グリッドです。
var ParamGrids = map[string]ParamGrid{
	StrategyMACross: {
		Fast: []int{5, 10, 15, 20},
		Slow: []int{20, 30, 40, 60},
	},
	StrategyMACD: {
		Fast:   []int{10, 12, 15},
		Slow:   []int{20, 26, 30},
		Signal: []int{7, 9, 12},
	},
}

// Combinations はグリッドの組み合わせをグリッド順に返します。
// fast が slow 以上になる組み合わせは戦略として成立しないため含めません。
func (g ParamGrid) Combinations() []entity.Params {
	signals := g.Signal
	if len(signals) == 0 {
		signals = []int{0}
	}
	var out []entity.Params
	for _, f := range g.Fast {
		for _, s := range g.Slow {
			if f >= s {
				continue
			}
			for _, sg := range signals {
				out = append(out, entity.Params{FastPeriod: f, SlowPeriod: s, SignalPeriod: sg})
			}
		}
	}
	return out
}

// OptimizeRequest はパラメータ最適化の入力です。InitialCash と Commission の扱いは Request と同じです。
type OptimizeRequest struct {
	Symbol      string
	Strategy    string
	Start       time.Time
	End         time.Time
	InitialCash null.Float64
	Commission  null.Float64
}

// Optimize は戦略のグリッド全体を同じ日足でバックテストし、指標ごとの最良の結果を選びます。
// 1つの組み合わせの失敗は Failed に記録し、残りの組み合わせは続行します。
func (u *BacktestUsecase) Optimize(ctx context.Context, req OptimizeRequest) (entity.Optimization, error) {
	name := normalizeStrategy(req.Strategy)
	grid, ok := u.grids[name]
	if !ok {
		return entity.Optimization{}, apperr.Configf("unknown strategy %q", req.Strategy)
	}
	in, err := u.prepare(ctx, req.Symbol, req.Start, req.End, req.InitialCash, req.Commission)
	if err != nil {
		return entity.Optimization{}, err
	}

	combos := grid.Combinations()
	out := entity.Optimization{Symbol: in.symbol, Strategy: name, Combinations: len(combos)}
	for _, p := range combos {
		if err := ctx.Err(); err != nil {
			return entity.Optimization{}, err
		}
		res, err := u.runParams(in, name, p)
		if err != nil {
			slog.Warn("optimization run failed", "symbol", in.symbol, "strategy", name, "params", p, "error", err)
			out.Failed = append(out.Failed, entity.FailedRun{Params: p, Err: err})
			continue
		}
		out.Runs = append(out.Runs, res)
	}

	out.BestByReturn = best(out.Runs, func(a, b entity.Result) bool {
		if a.TotalReturn != b.TotalReturn {
			return a.TotalReturn > b.TotalReturn
		}
		// 同じ収益率なら取引のある方を選ぶ
		return len(a.Trades) > len(b.Trades)
	})
	out.BestBySharpe = best(out.Runs, func(a, b entity.Result) bool { return a.SharpeRatio > b.SharpeRatio })
	out.BestByAnnual = best(out.Runs, func(a, b entity.Result) bool { return a.AnnualReturn > b.AnnualReturn })

	slog.Info("optimization finished", "symbol", in.symbol, "strategy", name,
		"combinations", out.Combinations, "succeeded", len(out.Runs), "failed", len(out.Failed))
	return out, nil
}

func (u *BacktestUsecase) runParams(in prepared, name string, p entity.Params) (entity.Result, error) {
	s, err := NewStrategy(name, p)
	if err != nil {
		return entity.Result{}, err
	}
	return u.run(in, s)
}

// best は better で最も優れた結果を返します。同点の場合はグリッド順で先のものです。
func best(runs []entity.Result, better func(a, b entity.Result) bool) *entity.Result {
	if len(runs) == 0 {
		return nil
	}
	idx := 0
	for i := 1; i < len(runs); i++ {
		if better(runs[i], runs[idx]) {
			idx = i
		}
	}
	return &runs[idx]
}
