// Package alphavantage provides a client for the Alpha Vantage intraday time series API.
package alphavantage

import (
	"os"
	"time"
)

// DefaultBaseURL はAlpha Vantage APIのクエリエンドポイントです。
const DefaultBaseURL = "https://www.alphavantage.co/query"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey     string        // API key for authentication (not validated; a bad key surfaces as a fetch failure)
	BaseURL    string        // Query endpoint (e.g., "https://www.alphavantage.co/query")
	OutputSize string        // "compact" or "full"; empty leaves the upstream default
	Timeout    time.Duration // HTTP request timeout
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:     os.Getenv("ALPHA_VANTAGE_API_KEY"),
		BaseURL:    os.Getenv("ALPHA_VANTAGE_BASE_URL"),
		OutputSize: os.Getenv("ALPHA_VANTAGE_OUTPUT_SIZE"),
		Timeout:    10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}
