package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"
)

// calculators lists every calculator linked into this build.
func calculators() []Calculator {
	out := []Calculator{Manual()}
	if lib := newLibrary(); lib != nil {
		out = append(out, lib)
	}
	return out
}

func ramp(n int, from, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func firstValid(vs []null.Float64) int {
	for i, v := range vs {
		if v.Valid {
			return i
		}
	}
	return -1
}

func countValid(vs []null.Float64) int {
	n := 0
	for _, v := range vs {
		if v.Valid {
			n++
		}
	}
	return n
}

func TestSMA_DefinedCount(t *testing.T) {
	t.Parallel()

	for _, c := range calculators() {
		for _, n := range []int{0, 1, 4, 5, 19, 20, 60} {
			for _, w := range []int{1, 5, 20} {
				got := c.SMA(ramp(n, 10, 0.5), w)
				require.Len(t, got, n)
				want := n - w + 1
				if want < 0 {
					want = 0
				}
				assert.Equal(t, want, countValid(got), "%s n=%d w=%d", c.Name(), n, w)
				for i := 0; i < w-1 && i < n; i++ {
					assert.False(t, got[i].Valid, "%s n=%d w=%d i=%d", c.Name(), n, w, i)
				}
			}
		}
	}
}

func TestSMA_FirstTwentyDayValueOnBarTwenty(t *testing.T) {
	t.Parallel()

	closes := ramp(25, 1, 1)
	for _, c := range calculators() {
		got := c.SMA(closes, 20)
		assert.Equal(t, 19, firstValid(got), c.Name())
		assert.InDelta(t, 10.5, got[19].Float64, 1e-9, c.Name())
		assert.InDelta(t, 15.5, got[24].Float64, 1e-9, c.Name())
	}
}

func TestSMA_NonFiniteIsBlank(t *testing.T) {
	t.Parallel()

	got := Manual().SMA([]float64{1, math.Inf(1), 3, 4}, 2)
	assert.False(t, got[1].Valid)
	assert.False(t, got[2].Valid)
	assert.True(t, got[3].Valid)
	assert.InDelta(t, 3.5, got[3].Float64, 1e-12)
}

func TestBollinger(t *testing.T) {
	t.Parallel()

	t.Run("flat series collapses the bands", func(t *testing.T) {
		for _, c := range calculators() {
			u, m, l := c.Bollinger(flat(30, 50), 20, 2)
			assert.Equal(t, 19, firstValid(m), c.Name())
			for i := 19; i < 30; i++ {
				assert.InDelta(t, 50, m[i].Float64, 1e-9, c.Name())
				assert.InDelta(t, 50, u[i].Float64, 1e-4, c.Name())
				assert.InDelta(t, 50, l[i].Float64, 1e-4, c.Name())
			}
		}
	})

	t.Run("population deviation", func(t *testing.T) {
		// 1..4: mean 2.5, population variance 1.25
		u, m, l := Manual().Bollinger([]float64{1, 2, 3, 4}, 4, 2)
		sd := math.Sqrt(1.25)
		assert.InDelta(t, 2.5, m[3].Float64, 1e-12)
		assert.InDelta(t, 2.5+2*sd, u[3].Float64, 1e-12)
		assert.InDelta(t, 2.5-2*sd, l[3].Float64, 1e-12)
	})

	t.Run("short series is blank", func(t *testing.T) {
		for _, c := range calculators() {
			u, m, l := c.Bollinger(ramp(10, 1, 1), 20, 2)
			assert.Zero(t, countValid(u)+countValid(m)+countValid(l), c.Name())
		}
	})
}

func TestMACD(t *testing.T) {
	t.Parallel()

	closes := ramp(40, 100, 1)
	line, sig, hist := Manual().MACD(closes, 12, 26, 9)
	require.Len(t, line, 40)

	// both averages start at the first close
	assert.True(t, line[0].Valid)
	assert.InDelta(t, 0, line[0].Float64, 1e-12)
	assert.InDelta(t, 0, sig[0].Float64, 1e-12)

	// second bar by hand
	fast := 100 + 2.0/13*(101-100)
	slow := 100 + 2.0/27*(101-100)
	assert.InDelta(t, fast-slow, line[1].Float64, 1e-12)
	assert.InDelta(t, 0.2*(fast-slow), sig[1].Float64, 1e-12)

	for i := range closes {
		assert.InDelta(t, line[i].Float64-sig[i].Float64, hist[i].Float64, 1e-12)
	}
	// a steady rise keeps the fast average above the slow one
	assert.Greater(t, line[39].Float64, 0.0)
}

func TestRSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		closes []float64
		check  func(t *testing.T, got []null.Float64)
	}{
		{
			name:   "too short",
			closes: ramp(14, 1, 1),
			check: func(t *testing.T, got []null.Float64) {
				assert.Zero(t, countValid(got))
			},
		},
		{
			name:   "only gains",
			closes: ramp(30, 1, 1),
			check: func(t *testing.T, got []null.Float64) {
				assert.Equal(t, 14, firstValid(got))
				assert.InDelta(t, 100, got[14].Float64, 1e-12)
				assert.InDelta(t, 100, got[29].Float64, 1e-12)
			},
		},
		{
			name:   "only losses",
			closes: ramp(30, 100, -1),
			check: func(t *testing.T, got []null.Float64) {
				assert.InDelta(t, 0, got[14].Float64, 1e-12)
			},
		},
		{
			name:   "flat series",
			closes: flat(20, 7),
			check: func(t *testing.T, got []null.Float64) {
				assert.InDelta(t, 100, got[14].Float64, 1e-12)
			},
		},
		{
			name: "wilder smoothing",
			// seven +2 moves and seven -1 moves, then one +3
			closes: []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18, 17, 20},
			check: func(t *testing.T, got []null.Float64) {
				g, l := 1.0, 0.5
				assert.InDelta(t, 100-100/(1+g/l), got[14].Float64, 1e-12)
				g = (g*13 + 3) / 14
				l = l * 13 / 14
				assert.InDelta(t, 100-100/(1+g/l), got[15].Float64, 1e-12)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range calculators() {
				tt.check(t, c.RSI(tt.closes, 14))
			}
		})
	}
}

func TestStochastic(t *testing.T) {
	t.Parallel()

	t.Run("blank lead-in", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 100 + 5*math.Sin(float64(i)/3)
		}
		high, low := ramp(30, 0, 0), ramp(30, 0, 0)
		for i, c := range closes {
			high[i], low[i] = c+1, c-1
		}
		for _, c := range calculators() {
			k, d := c.Stochastic(high, low, closes, 9, 3, 3)
			assert.Equal(t, 10, firstValid(k), c.Name())
			assert.Equal(t, 12, firstValid(d), c.Name())
			for i := 12; i < 30; i++ {
				assert.GreaterOrEqual(t, k[i].Float64, 0.0)
				assert.LessOrEqual(t, k[i].Float64, 100.0)
			}
		}
	})

	t.Run("zero range is blank", func(t *testing.T) {
		p := flat(20, 5)
		for _, c := range calculators() {
			k, d := c.Stochastic(p, p, p, 9, 3, 3)
			assert.Zero(t, countValid(k), c.Name())
			assert.Zero(t, countValid(d), c.Name())
		}
	})

	t.Run("blank inside a smoothing window", func(t *testing.T) {
		// bars 0..8 flat, then a rise: raw %K at 8 is blank, 9 onward defined
		p := append(flat(9, 5), ramp(6, 6, 1)...)
		k, _ := Manual().Stochastic(p, p, p, 9, 3, 3)
		assert.False(t, k[10].Valid)
		assert.True(t, k[11].Valid)
		assert.InDelta(t, 100, k[11].Float64, 1e-12)
	})
}

func TestChoose(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NameManual, choose("manual").Name())
	assert.Equal(t, NameManual, choose(" MANUAL ").Name())
	if newLibrary() != nil {
		assert.Equal(t, NameLibrary, choose("").Name())
	} else {
		assert.Equal(t, NameManual, choose("").Name())
	}
}

func TestDecayedMatchesRecursiveEMA(t *testing.T) {
	t.Parallel()

	closes := ramp(80, 50, 0.7)
	for i := range closes {
		if i%3 == 0 {
			closes[i] -= 4
		}
	}
	for _, n := range []int{3, 12, 26} {
		want := ema(closes, n)
		got := decayed(closes, 2/float64(n+1))
		require.Len(t, got, len(want))
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-9*math.Max(1, math.Abs(want[i])), "n=%d bar %d", n, i)
		}
	}
	assert.Empty(t, decayed(nil, 0.5))
}
