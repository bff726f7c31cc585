package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	shanghai := time.FixedZone("CST", 8*3600)
	in := time.Date(2024, 5, 6, 15, 0, 0, 0, shanghai)

	got := NormalizeDate(in)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), got)
}

func TestValidateOrder(t *testing.T) {
	t.Parallel()

	d := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		candles []Candle
		wantErr bool
	}{
		{name: "empty", candles: nil},
		{name: "single", candles: []Candle{{Date: d(1)}}},
		{name: "ascending with gaps", candles: []Candle{{Date: d(1)}, {Date: d(2)}, {Date: d(5)}}},
		{name: "duplicate date", candles: []Candle{{Date: d(1)}, {Date: d(1)}}, wantErr: true},
		{name: "descending", candles: []Candle{{Date: d(3)}, {Date: d(2)}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateOrder(tt.candles)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPriceColumns_AreCopies(t *testing.T) {
	t.Parallel()

	cs := []Candle{{High: 3, Low: 1, Close: 2}, {High: 6, Low: 4, Close: 5}}

	closes := Closes(cs)
	closes[0] = 99

	assert.Equal(t, 2.0, cs[0].Close)
	assert.Equal(t, []float64{3, 6}, Highs(cs))
	assert.Equal(t, []float64{1, 4}, Lows(cs))
}
