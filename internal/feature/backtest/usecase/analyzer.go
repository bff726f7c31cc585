package usecase

import (
	"math"

	"quant_backend/internal/feature/backtest/domain/entity"
	"quant_backend/internal/shared/apperr"

	"github.com/montanaflynn/stats"
)

// TradingDays は日次の統計量を年率換算する日数です。
const TradingDays = 252

// Metrics は資産曲線の評価指標です。
type Metrics struct {
	FinalValue     float64
	TotalReturn    float64
	AnnualReturn   float64
	SharpeRatio    float64
	MaxDrawdown    float64 // パーセント
	MaxDrawdownLen int     // 足の本数
}

// Analyze は initialCash から始めた実行の資産曲線 curve を評価します。
func Analyze(curve []entity.EquityPoint, initialCash float64) (Metrics, error) {
	if initialCash <= 0 {
		return Metrics{}, apperr.Computef("initial cash must be positive, got %v", initialCash)
	}
	if len(curve) == 0 {
		return Metrics{FinalValue: initialCash}, nil
	}

	values := make([]float64, len(curve))
	for i, p := range curve {
		values[i] = p.Value
	}
	returns, err := dailyReturns(values)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{FinalValue: values[len(values)-1]}
	m.TotalReturn = m.FinalValue/initialCash - 1
	m.AnnualReturn = math.Pow(1+m.TotalReturn, float64(TradingDays)/float64(len(values))) - 1
	if m.SharpeRatio, err = sharpe(returns); err != nil {
		return Metrics{}, err
	}
	m.MaxDrawdown, m.MaxDrawdownLen = drawdown(values)
	return m, nil
}

func dailyReturns(values []float64) ([]float64, error) {
	out := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] <= 0 {
			return nil, apperr.Computef("equity %v at bar %d leaves the next return undefined", values[i-1], i-1)
		}
		out = append(out, values[i]/values[i-1]-1)
	}
	return out, nil
}

// sharpe は日次リターンの平均を標本標準偏差で割って年率換算します。分散がなければ 0 です。
func sharpe(returns []float64) (float64, error) {
	if len(returns) < 2 {
		return 0, nil
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, apperr.Computef("return deviation: %v", err)
	}
	if sd < 1e-12 {
		return 0, nil
	}
	mean, err := stats.Mean(returns)
	if err != nil {
		return 0, apperr.Computef("return mean: %v", err)
	}
	return mean / sd * math.Sqrt(TradingDays), nil
}

// drawdown はそれまでの高値からの最大下落率（パーセント）と、
// 高値を下回っていた最長の足の本数を返します。
func drawdown(values []float64) (float64, int) {
	var maxDD float64
	var longest, run int
	peak := values[0]
	for _, v := range values {
		if v >= peak {
			peak = v
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
		if peak > 0 {
			maxDD = max(maxDD, (peak-v)/peak*100)
		}
	}
	return maxDD, longest
}
