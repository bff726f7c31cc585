// Package dto defines data transfer objects for the instruments HTTP API.
package dto

// InstrumentItem represents an instrument in the API response.
type InstrumentItem struct {
	Symbol      string `json:"symbol"`
	Market      string `json:"market"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	TradingRule string `json:"trading_rule"`
}
