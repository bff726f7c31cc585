// Package calc provides the numeric kernels behind the indicator engine.
//
// Two calculators implement the same formulas: the library calculator backed
// by gct-ta and montanaflynn/stats, and a manual calculator that computes every
// window directly. Output slices always have the length of the input, and a
// value is invalid (blank) when the window preceding the bar is incomplete or
// the result is not a finite number.
package calc

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/volatiletech/null"
)

// EngineEnv forces the manual calculator when set to "manual".
const EngineEnv = "INDICATOR_ENGINE"

const (
	NameLibrary = "library"
	NameManual  = "manual"
)

// Calculator computes indicator series over ordered price arrays.
type Calculator interface {
	Name() string
	SMA(values []float64, window int) []null.Float64
	Bollinger(closes []float64, window int, k float64) (upper, middle, lower []null.Float64)
	MACD(closes []float64, fast, slow, signal int) (macd, sig, hist []null.Float64)
	RSI(closes []float64, period int) []null.Float64
	Stochastic(high, low, closes []float64, window, smoothK, smoothD int) (k, d []null.Float64)
}

var (
	defaultOnce sync.Once
	defaultCalc Calculator
)

// Default returns the process-wide calculator. The choice is made on first use
// and never changes afterwards.
func Default() Calculator {
	defaultOnce.Do(func() {
		defaultCalc = choose(os.Getenv(EngineEnv))
		slog.Info("indicator calculator selected", "engine", defaultCalc.Name())
	})
	return defaultCalc
}

func choose(env string) Calculator {
	if strings.EqualFold(strings.TrimSpace(env), NameManual) {
		return Manual()
	}
	if lib := newLibrary(); lib != nil {
		return lib
	}
	return Manual()
}
