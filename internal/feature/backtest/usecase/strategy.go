package usecase

import (
	"quant_backend/internal/feature/backtest/domain/entity"
	"quant_backend/internal/feature/indicators/calc"
	"quant_backend/internal/shared/apperr"

	"github.com/volatiletech/null"
)

// NewStrategy が受け付ける戦略名です。
const (
	StrategyMACross = "macross"
	StrategyMACD    = "macd"
)

// Strategies はすべての戦略名です。
var Strategies = []string{StrategyMACross, StrategyMACD}

// Signal は1本の足で戦略が求める売買です。
type Signal int

const (
	SignalNone Signal = iota
	SignalEntry
	SignalExit
)

// Strategy は終値から足ごとのシグナルを生成します。
type Strategy interface {
	Name() string
	Params() entity.Params
	Signals(closes []float64, c calc.Calculator) []Signal
}

// MACross は短期SMAが長期SMAを上抜けたら買い、下抜けたら売ります。
type MACross struct {
	Fast, Slow int
}

func (s MACross) Name() string { return StrategyMACross }

func (s MACross) Params() entity.Params {
	return entity.Params{FastPeriod: s.Fast, SlowPeriod: s.Slow}
}

func (s MACross) Signals(closes []float64, c calc.Calculator) []Signal {
	return crosses(c.SMA(closes, s.Fast), c.SMA(closes, s.Slow))
}

// MACDCross はMACDラインがシグナルを上抜けたら買い、下抜けたら売ります。
type MACDCross struct {
	Fast, Slow, Signal int
}

func (s MACDCross) Name() string { return StrategyMACD }

func (s MACDCross) Params() entity.Params {
	return entity.Params{FastPeriod: s.Fast, SlowPeriod: s.Slow, SignalPeriod: s.Signal}
}

func (s MACDCross) Signals(closes []float64, c calc.Calculator) []Signal {
	line, sig, _ := c.MACD(closes, s.Fast, s.Slow, s.Signal)
	// 遅いEMAとシグナルのウィンドウが揃うまではクロスを判定しない
	return crosses(warmed(line, s.Slow-1), warmed(sig, s.Slow+s.Signal-2))
}

// warmed は from より前の値を空にしたコピーを返します。
func warmed(vs []null.Float64, from int) []null.Float64 {
	out := make([]null.Float64, len(vs))
	for i := from; i < len(vs); i++ {
		if i >= 0 {
			out[i] = vs[i]
		}
	}
	return out
}

// NewStrategy は名前から戦略を作成し、0 のウィンドウは既定値で埋めます。
// 未知の名前や不正なウィンドウは設定エラーです。
func NewStrategy(name string, p entity.Params) (Strategy, error) {
	switch name {
	case StrategyMACross:
		if p.SignalPeriod != 0 {
			return nil, apperr.Configf("strategy %s takes no signal_period", name)
		}
		s := MACross{Fast: orDefault(p.FastPeriod, 5), Slow: orDefault(p.SlowPeriod, 20)}
		if err := checkWindows(name, s.Fast, s.Slow); err != nil {
			return nil, err
		}
		return s, nil
	case StrategyMACD:
		s := MACDCross{
			Fast:   orDefault(p.FastPeriod, 12),
			Slow:   orDefault(p.SlowPeriod, 26),
			Signal: orDefault(p.SignalPeriod, 9),
		}
		if err := checkWindows(name, s.Fast, s.Slow); err != nil {
			return nil, err
		}
		if s.Signal < 1 {
			return nil, apperr.Configf("strategy %s: signal_period must be positive, got %d", name, s.Signal)
		}
		return s, nil
	default:
		return nil, apperr.Configf("unknown strategy %q", name)
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func checkWindows(name string, fast, slow int) error {
	if fast < 1 || slow < 1 {
		return apperr.Configf("strategy %s: periods must be positive, got fast=%d slow=%d", name, fast, slow)
	}
	if fast >= slow {
		return apperr.Configf("strategy %s: fast_period %d must be below slow_period %d", name, fast, slow)
	}
	return nil
}

// crosses は a が b を厳密に上抜け・下抜けした足を返します。前後の足の値がすべて定義されている必要があり、
// 等しい値はクロスとみなしません。
func crosses(a, b []null.Float64) []Signal {
	out := make([]Signal, len(a))
	for i := 1; i < len(a); i++ {
		if !a[i].Valid || !b[i].Valid || !a[i-1].Valid || !b[i-1].Valid {
			continue
		}
		x, y, px, py := a[i].Float64, b[i].Float64, a[i-1].Float64, b[i-1].Float64
		switch {
		case x > y && px <= py:
			out[i] = SignalEntry
		case x < y && px >= py:
			out[i] = SignalExit
		}
	}
	return out
}
