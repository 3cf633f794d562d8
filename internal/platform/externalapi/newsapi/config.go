// Package newsapi provides a client for the NewsAPI /v2/everything search endpoint.
package newsapi

import (
	"os"
	"time"
)

// DefaultBaseURL はNewsAPIのベースURLです。
const DefaultBaseURL = "https://newsapi.org"

// Config holds configuration for the NewsAPI client.
type Config struct {
	APIKey   string        // API key (not validated; a bad key surfaces as a fetch failure)
	BaseURL  string        // Base URL without path (e.g., "https://newsapi.org")
	Language string        // "language" parameter
	SortBy   string        // "sortBy" parameter
	Timeout  time.Duration // HTTP request timeout
}

// LoadConfig loads NewsAPI configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:   os.Getenv("NEWS_API_KEY"),
		BaseURL:  os.Getenv("NEWS_API_BASE_URL"),
		Language: "en",
		SortBy:   "publishedAt",
		Timeout:  10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}
