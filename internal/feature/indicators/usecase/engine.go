package usecase

import (
	"math"

	candle "quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/indicators/calc"
	"quant_backend/internal/feature/indicators/domain/entity"
	instrument "quant_backend/internal/feature/instruments/domain/entity"
	"quant_backend/internal/shared/apperr"

	"github.com/volatiletech/null"
)

// Engine は日付順のローソク足から指標行を算出します。
type Engine struct {
	calc calc.Calculator
}

// NewEngine は c を使う Engine を作成します。c が nil のときはプロセス既定の計算器を使います。
func NewEngine(c calc.Calculator) *Engine {
	if c == nil {
		c = calc.Default()
	}
	return &Engine{calc: c}
}

// InjectIndicators はプロセス既定の計算器で series の指標列を算出します。
func InjectIndicators(series []candle.Candle, market instrument.Market) ([]entity.IndicatorRow, error) {
	return NewEngine(nil).Inject(series, market)
}

// Inject はローソク足ごとに新しい行を返します。series は変更しません。
func (e *Engine) Inject(series []candle.Candle, market instrument.Market) ([]entity.IndicatorRow, error) {
	p, err := PresetFor(market)
	if err != nil {
		return nil, err
	}
	if err := candle.ValidateOrder(series); err != nil {
		return nil, apperr.Computef("unordered series: %v", err)
	}

	closes := candle.Closes(series)
	highs := candle.Highs(series)
	lows := candle.Lows(series)

	sma5 := e.calc.SMA(closes, p.SMAShort)
	sma20 := e.calc.SMA(closes, p.SMAMid)
	sma60 := e.calc.SMA(closes, p.SMALong)
	bbu, bbm, bbl := e.calc.Bollinger(closes, p.BBWindow, p.BBStdDev)
	macd, sig, hist := e.calc.MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	rsi := e.calc.RSI(closes, p.RSIPeriod)
	k, d := e.calc.Stochastic(highs, lows, closes, p.StochWindow, p.StochSmoothK, p.StochSmoothD)

	rows := make([]entity.IndicatorRow, len(series))
	for i, c := range series {
		rows[i] = entity.IndicatorRow{
			Date:     c.Date,
			Open:     c.Open,
			High:     c.High,
			Low:      c.Low,
			Close:    c.Close,
			Volume:   c.Volume,
			Amount:   c.Amount,
			Turnover: c.Turnover,

			SMA5:  sma5[i],
			SMA20: sma20[i],
			SMA60: sma60[i],

			BBL: bbl[i],
			BBM: bbm[i],
			BBU: bbu[i],
			BBB: bandwidth(bbu[i], bbm[i], bbl[i]),
			BBP: percentB(c.Close, bbu[i], bbl[i]),

			MACD:       macd[i],
			MACDHist:   hist[i],
			MACDSignal: sig[i],

			RSI14: rsi[i],

			StochK: k[i],
			StochD: d[i],
			KDJJ:   kdjJ(k[i], d[i]),
		}
	}
	return rows, nil
}

func bandwidth(u, m, l null.Float64) null.Float64 {
	if !u.Valid || !m.Valid || !l.Valid || m.Float64 == 0 {
		return null.Float64{}
	}
	return finite((u.Float64 - l.Float64) / m.Float64 * 100)
}

func percentB(close float64, u, l null.Float64) null.Float64 {
	if !u.Valid || !l.Valid || u.Float64 == l.Float64 {
		return null.Float64{}
	}
	return finite((close - l.Float64) / (u.Float64 - l.Float64) * 100)
}

func kdjJ(k, d null.Float64) null.Float64 {
	if !k.Valid || !d.Valid {
		return null.Float64{}
	}
	return finite(3*k.Float64 - 2*d.Float64)
}

func finite(x float64) null.Float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return null.Float64{}
	}
	return null.Float64From(x)
}
