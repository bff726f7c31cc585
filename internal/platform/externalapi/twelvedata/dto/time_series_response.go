// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// TimeSeriesResponse represents the JSON response from the Twelve Data time_series endpoint.
// Numeric fields are string-encoded by the API.
type TimeSeriesResponse struct {
	Status   string            `json:"status"`
	Code     int               `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
	Meta     TimeSeriesMeta    `json:"meta"`
	Values   []TimeSeriesValue `json:"values"`
}

// TimeSeriesMeta describes the returned series.
type TimeSeriesMeta struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	Currency string `json:"currency"`
	Exchange string `json:"exchange"`
}

// TimeSeriesValue is one bar. Values arrive newest first.
type TimeSeriesValue struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}
