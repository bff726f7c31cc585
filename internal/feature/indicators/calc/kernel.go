package calc

import (
	"math"

	"github.com/volatiletech/null"
)

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func value(x float64) null.Float64 {
	if !finite(x) {
		return null.Float64{}
	}
	return null.Float64From(x)
}

func blanks(n int) []null.Float64 {
	return make([]null.Float64, n)
}

// ema is seeded with the first input and defined from the first bar.
func ema(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || n <= 0 {
		return out
	}
	alpha := 2.0 / float64(n+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

func macd(closes []float64, fast, slow, signal int) (line, sig, hist []null.Float64) {
	n := len(closes)
	line, sig, hist = blanks(n), blanks(n), blanks(n)
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return line, sig, hist
	}
	f, s := ema(closes, fast), ema(closes, slow)
	raw := make([]float64, n)
	for i := range raw {
		raw[i] = f[i] - s[i]
	}
	sg := ema(raw, signal)
	for i := range raw {
		line[i] = value(raw[i])
		sig[i] = value(sg[i])
		hist[i] = value(raw[i] - sg[i])
	}
	return line, sig, hist
}

// wilderRSI averages the first period changes, then smooths with
// avg = (prev*(period-1) + x) / period.
func wilderRSI(closes []float64, period int) []null.Float64 {
	out := blanks(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}
	var gain, loss float64
	for i := 1; i <= period; i++ {
		g, l := change(closes[i] - closes[i-1])
		gain += g
		loss += l
	}
	p := float64(period)
	gain /= p
	loss /= p
	out[period] = rsi(gain, loss)
	for i := period + 1; i < len(closes); i++ {
		g, l := change(closes[i] - closes[i-1])
		gain = (gain*(p-1) + g) / p
		loss = (loss*(p-1) + l) / p
		out[i] = rsi(gain, loss)
	}
	return out
}

func change(d float64) (gain, loss float64) {
	if d > 0 {
		return d, 0
	}
	return 0, -d
}

func rsi(gain, loss float64) null.Float64 {
	if loss == 0 {
		if !finite(gain) {
			return null.Float64{}
		}
		return null.Float64From(100)
	}
	return value(100 - 100/(1+gain/loss))
}

// window returns the valid values of vs[i-w+1 : i+1], or false when the
// window is incomplete or holds a blank.
func window(vs []null.Float64, i, w int) ([]float64, bool) {
	if w <= 0 || i-w+1 < 0 {
		return nil, false
	}
	out := make([]float64, 0, w)
	for _, v := range vs[i-w+1 : i+1] {
		if !v.Valid {
			return nil, false
		}
		out = append(out, v.Float64)
	}
	return out, true
}

// percentB is (x-lo)/(hi-lo)*100, blank when the range is zero.
func percentB(x, lo, hi float64) null.Float64 {
	if hi == lo {
		return null.Float64{}
	}
	return value(100 * (x - lo) / (hi - lo))
}
