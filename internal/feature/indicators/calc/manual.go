package calc

import (
	"math"

	"github.com/volatiletech/null"
)

type manual struct{}

// Manual returns the calculator that evaluates every window directly.
func Manual() Calculator { return manual{} }

func (manual) Name() string { return NameManual }

func (manual) SMA(values []float64, w int) []null.Float64 {
	out := blanks(len(values))
	if w <= 0 {
		return out
	}
	for i := w - 1; i < len(values); i++ {
		out[i] = value(mean(values[i-w+1 : i+1]))
	}
	return out
}

func (manual) Bollinger(closes []float64, w int, k float64) (upper, middle, lower []null.Float64) {
	n := len(closes)
	upper, middle, lower = blanks(n), blanks(n), blanks(n)
	if w <= 0 {
		return upper, middle, lower
	}
	for i := w - 1; i < n; i++ {
		win := closes[i-w+1 : i+1]
		m := mean(win)
		var ss float64
		for _, v := range win {
			ss += (v - m) * (v - m)
		}
		sd := math.Sqrt(ss / float64(w))
		middle[i] = value(m)
		upper[i] = value(m + k*sd)
		lower[i] = value(m - k*sd)
	}
	return upper, middle, lower
}

func (manual) MACD(closes []float64, fast, slow, signal int) (line, sig, hist []null.Float64) {
	n := len(closes)
	line, sig, hist = blanks(n), blanks(n), blanks(n)
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return line, sig, hist
	}
	f := decayed(closes, 2/float64(fast+1))
	s := decayed(closes, 2/float64(slow+1))
	raw := make([]float64, n)
	for i := range raw {
		raw[i] = f[i] - s[i]
	}
	sg := decayed(raw, 2/float64(signal+1))
	for i := range raw {
		line[i] = value(raw[i])
		sig[i] = value(sg[i])
		hist[i] = value(raw[i] - sg[i])
	}
	return line, sig, hist
}

func (manual) RSI(closes []float64, period int) []null.Float64 {
	out := blanks(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}
	// gains[0] and losses[0] hold the simple averages of the first period changes
	p := float64(period)
	gains, losses := []float64{0}, []float64{0}
	for i := 1; i < len(closes); i++ {
		g, l := change(closes[i] - closes[i-1])
		if i <= period {
			gains[0] += g / p
			losses[0] += l / p
			continue
		}
		gains = append(gains, g)
		losses = append(losses, l)
	}
	ag, al := decayed(gains, 1/p), decayed(losses, 1/p)
	for j := range ag {
		out[period+j] = rsi(ag[j], al[j])
	}
	return out
}

func (manual) Stochastic(high, low, closes []float64, w, smoothK, smoothD int) (k, d []null.Float64) {
	n := len(closes)
	raw := blanks(n)
	if w > 0 {
		for i := w - 1; i < n; i++ {
			hh, ll := high[i-w+1], low[i-w+1]
			for j := i - w + 2; j <= i; j++ {
				hh = math.Max(hh, high[j])
				ll = math.Min(ll, low[j])
			}
			raw[i] = percentB(closes[i], ll, hh)
		}
	}
	k = smoothManual(raw, smoothK)
	d = smoothManual(k, smoothD)
	return k, d
}

func smoothManual(vs []null.Float64, w int) []null.Float64 {
	out := blanks(len(vs))
	for i := range vs {
		if win, ok := window(vs, i, w); ok {
			out[i] = value(mean(win))
		}
	}
	return out
}

func mean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// decayed evaluates every exponentially weighted average as an explicit sum,
// (1-alpha)^t*xs[0] + sum over j in 1..t of alpha*(1-alpha)^(t-j)*xs[j].
func decayed(xs []float64, alpha float64) []float64 {
	out := make([]float64, len(xs))
	for t := range xs {
		v := math.Pow(1-alpha, float64(t)) * xs[0]
		for j := 1; j <= t; j++ {
			v += alpha * math.Pow(1-alpha, float64(t-j)) * xs[j]
		}
		out[t] = v
	}
	return out
}
