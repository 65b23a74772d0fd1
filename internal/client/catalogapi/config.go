// Package catalogapi provides an HTTP client for the ETF catalog API.
package catalogapi

import (
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is used when ETF_API_URL is not set.
const DefaultBaseURL = "http://localhost:8080"

// Config holds configuration for the catalog API client.
type Config struct {
	BaseURL string        // Base URL of the server (e.g., "http://localhost:8080")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads client configuration from environment variables.
func LoadConfig() Config {
	base := strings.TrimRight(strings.TrimSpace(os.Getenv("ETF_API_URL")), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 15 * time.Second,
	}
}
