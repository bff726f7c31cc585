// Package eastmoney provides the CN market provider backed by the Eastmoney kline API.
package eastmoney

import (
	"os"
	"time"
)

const defaultBaseURL = "https://push2his.eastmoney.com"

// Config holds configuration for the Eastmoney kline client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://push2his.eastmoney.com")
	Adjust  string        // fqt parameter: "0" raw, "1" forward adjusted, "2" backward adjusted
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Eastmoney configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("EASTMONEY_BASE_URL"),
		Adjust:  os.Getenv("EASTMONEY_ADJUST"),
		Timeout: 10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Adjust == "" {
		cfg.Adjust = "1"
	}
	return cfg
}
