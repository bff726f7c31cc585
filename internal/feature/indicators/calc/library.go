//go:build !manualta

package calc

import (
	"github.com/montanaflynn/stats"
	"github.com/thrasher-corp/gct-ta/indicators"
	"github.com/volatiletech/null"
)

type library struct{}

func newLibrary() Calculator { return library{} }

func (library) Name() string { return NameLibrary }

// SMA wraps indicators.SMA, which panics when the input is shorter than the
// period and fills the lookback with zeros.
func (library) SMA(values []float64, w int) []null.Float64 {
	out := blanks(len(values))
	if w <= 0 || len(values) < w {
		return out
	}
	res := indicators.SMA(values, w)
	for i := w - 1; i < len(values) && i < len(res); i++ {
		out[i] = value(res[i])
	}
	return out
}

func (library) Bollinger(closes []float64, w int, k float64) (upper, middle, lower []null.Float64) {
	n := len(closes)
	upper, middle, lower = blanks(n), blanks(n), blanks(n)
	if w <= 0 || n < w {
		return upper, middle, lower
	}
	u, m, l := indicators.BBANDS(closes, w, k, k, indicators.Sma)
	for i := w - 1; i < n && i < len(m); i++ {
		middle[i] = value(m[i])
		// a flat window can drive the variance slightly negative
		if middle[i].Valid && (!finite(u[i]) || !finite(l[i])) {
			upper[i], lower[i] = middle[i], middle[i]
			continue
		}
		upper[i] = value(u[i])
		lower[i] = value(l[i])
	}
	return upper, middle, lower
}

// MACD and RSI run the recursive kernel rather than gct-ta, which seeds both
// with an SMA of the lookback and shifts every value.
func (library) MACD(closes []float64, fast, slow, signal int) (line, sig, hist []null.Float64) {
	return macd(closes, fast, slow, signal)
}

func (library) RSI(closes []float64, period int) []null.Float64 {
	return wilderRSI(closes, period)
}

func (library) Stochastic(high, low, closes []float64, w, smoothK, smoothD int) (k, d []null.Float64) {
	n := len(closes)
	raw := blanks(n)
	if w > 0 {
		for i := w - 1; i < n; i++ {
			hh, err := stats.Max(high[i-w+1 : i+1])
			if err != nil {
				continue
			}
			ll, err := stats.Min(low[i-w+1 : i+1])
			if err != nil {
				continue
			}
			raw[i] = percentB(closes[i], ll, hh)
		}
	}
	k = smoothStats(raw, smoothK)
	d = smoothStats(k, smoothD)
	return k, d
}

func smoothStats(vs []null.Float64, w int) []null.Float64 {
	out := blanks(len(vs))
	for i := range vs {
		win, ok := window(vs, i, w)
		if !ok {
			continue
		}
		if m, err := stats.Mean(win); err == nil {
			out[i] = value(m)
		}
	}
	return out
}
