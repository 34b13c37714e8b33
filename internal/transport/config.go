package transport

import (
	"strings"
	"time"
)

// Config holds the settings of the marketplace gateway.
type Config struct {
	BaseURL     string
	CSRFToken   string
	DialTimeout time.Duration
	LogCalls    bool
}

// DefaultConfig points at a local sandbox backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:8085",
		DialTimeout: 5 * time.Second,
	}
}

// URL resolves endpoint against BaseURL. Absolute endpoints are returned as is.
func (c Config) URL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}
