// Package entity defines the domain models for the indicators feature.
package entity

import (
	"time"

	"github.com/volatiletech/null"
)

// IndicatorRow is one daily bar augmented with technical indicators.
// Blank values are invalid null.Float64 and encode as JSON null.
type IndicatorRow struct {
	Date     time.Time    `json:"-"`
	Open     float64      `json:"open"`
	High     float64      `json:"high"`
	Low      float64      `json:"low"`
	Close    float64      `json:"close"`
	Volume   int64        `json:"volume"`
	Amount   null.Float64 `json:"amount"`
	Turnover null.Float64 `json:"turnover"`

	SMA5  null.Float64 `json:"SMA_5"`
	SMA20 null.Float64 `json:"SMA_20"`
	SMA60 null.Float64 `json:"SMA_60"`

	BBL null.Float64 `json:"BBL_20_2.0"`
	BBM null.Float64 `json:"BBM_20_2.0"`
	BBU null.Float64 `json:"BBU_20_2.0"`
	BBB null.Float64 `json:"BBB_20_2.0"`
	BBP null.Float64 `json:"BBP_20_2.0"`

	MACD       null.Float64 `json:"MACD_12_26_9"`
	MACDHist   null.Float64 `json:"MACDh_12_26_9"`
	MACDSignal null.Float64 `json:"MACDs_12_26_9"`

	RSI14 null.Float64 `json:"RSI_14"`

	StochK null.Float64 `json:"STOCHk_9_3_3"`
	StochD null.Float64 `json:"STOCHd_9_3_3"`
	KDJJ   null.Float64 `json:"KDJ_J"`
}
