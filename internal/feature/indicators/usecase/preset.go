package usecase

import (
	instrument "quant_backend/internal/feature/instruments/domain/entity"
	"quant_backend/internal/shared/apperr"
)

// Preset は市場ごとの指標ウィンドウです。
// entity.IndicatorRow の列名はこのウィンドウを表します。
type Preset struct {
	SMAShort, SMAMid, SMALong int

	BBWindow int
	BBStdDev float64

	MACDFast, MACDSlow, MACDSignal int

	RSIPeriod int

	StochWindow, StochSmoothK, StochSmoothD int
}

var conventional = Preset{
	SMAShort: 5, SMAMid: 20, SMALong: 60,
	BBWindow: 20, BBStdDev: 2,
	MACDFast: 12, MACDSlow: 26, MACDSignal: 9,
	RSIPeriod:   14,
	StochWindow: 9, StochSmoothK: 3, StochSmoothD: 3,
}

// PresetFor は市場に対応するプリセットを返します。現在はどちらの市場も標準のウィンドウを使い、
// 市場タグで計算方法が変わることはありません。
func PresetFor(m instrument.Market) (Preset, error) {
	switch m {
	case instrument.MarketUS:
		return conventional, nil
	case instrument.MarketCN:
		return conventional, nil
	default:
		return Preset{}, apperr.Configf("no indicator preset for market %q", m)
	}
}
