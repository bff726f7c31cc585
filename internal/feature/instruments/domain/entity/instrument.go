// Package entity defines the domain models for the instruments feature.
package entity

import (
	"strings"
	"time"

	"quant_backend/internal/shared/apperr"
)

// Market tags the market family an instrument trades in. The set is closed.
type Market string

const (
	MarketUS Market = "US"
	MarketCN Market = "CN"
)

// Markets lists every supported market tag.
var Markets = []Market{MarketUS, MarketCN}

// ParseMarket normalizes s and reports a configuration error for unknown tags.
func ParseMarket(s string) (Market, error) {
	m := Market(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MarketUS, MarketCN:
		return m, nil
	default:
		return "", apperr.Configf("unknown market %q", s)
	}
}

// Trading rules for settlement of CN instruments.
const (
	TradingRuleT0 = "T+0"
	TradingRuleT1 = "T+1"
)

// Instrument represents a tradable security.
// Symbol and Market are fixed once created. Name, category and the active flag may change.
type Instrument struct {
	ID          uint      `gorm:"primaryKey"`
	Symbol      string    `gorm:"size:20;not null;uniqueIndex"`
	Market      Market    `gorm:"size:8;not null"`
	Name        string    `gorm:"size:255;not null"`
	Category    string    `gorm:"size:100"`
	TradingRule string    `gorm:"size:8;not null;default:'T+1'"`
	IsActive    bool      `gorm:"not null;default:true"`
	SortKey     int       `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}
