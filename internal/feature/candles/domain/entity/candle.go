// Package entity defines the domain models for the candles feature.
package entity

import (
	"fmt"
	"time"

	"github.com/volatiletech/null"
)

// Candle is one trading day of OHLCV data for an instrument.
type Candle struct {
	Symbol   string       // Instrument symbol (e.g., "AAPL", "510300")
	Date     time.Time    // Trading day at UTC midnight, no time component
	Open     float64      // Opening price
	High     float64      // Highest price of the day
	Low      float64      // Lowest price of the day
	Close    float64      // Closing price
	Volume   int64        // Traded volume in the source's native unit
	Amount   null.Float64 // Traded value, when the source reports it
	Turnover null.Float64 // Turnover rate in percent, when the source reports it
}

// NormalizeDate truncates t to midnight UTC of its calendar day.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateOrder reports the first position where dates are not strictly ascending.
func ValidateOrder(cs []Candle) error {
	for i := 1; i < len(cs); i++ {
		if !cs[i].Date.After(cs[i-1].Date) {
			return fmt.Errorf("candle %d (%s) is not after %s",
				i, cs[i].Date.Format(time.DateOnly), cs[i-1].Date.Format(time.DateOnly))
		}
	}
	return nil
}

// Closes returns the close prices of cs as a new slice.
func Closes(cs []Candle) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Close
	}
	return out
}

// Highs returns the high prices of cs as a new slice.
func Highs(cs []Candle) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.High
	}
	return out
}

// Lows returns the low prices of cs as a new slice.
func Lows(cs []Candle) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Low
	}
	return out
}
