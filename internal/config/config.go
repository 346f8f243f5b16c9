// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Run      RunConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Catalog  CatalogConfig
	Factors  FactorsConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 15s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds catalog and ledger upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed size of one uploaded file in bytes (default: 20MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`
}

// RunConfig bounds concurrent pipeline runs. Workbook parsing holds whole
// files in memory, so runs are admitted through a semaphore.
type RunConfig struct {
	// MaxConcurrent is the number of runs processed at once (default: 4)
	MaxConcurrent int `env:"RUN_MAX_CONCURRENT" default:"4"`

	// MaxWait is how long a run waits for a slot before being rejected (default: 30s)
	MaxWait time.Duration `env:"RUN_MAX_WAIT" default:"30s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the rate limit per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies lists proxy CIDRs whose X-Real-IP / X-Forwarded-For
	// headers are honoured. Empty means forwarding headers are ignored.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey rejects API requests without a valid X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`
}

// CatalogConfig holds parts catalog settings.
type CatalogConfig struct {
	// DefaultPath is the catalog used when none is uploaded (default: CSGG.xlsx)
	DefaultPath string `env:"CATALOG_DEFAULT_PATH" default:"CSGG.xlsx"`

	// CacheSize is how many distinct catalog sources are memoized (default: 16)
	CacheSize int `env:"CATALOG_CACHE_SIZE" default:"16"`
}

// FactorsConfig holds the default emission factors offered to analysts.
type FactorsConfig struct {
	// VirginEF is kg CO2e per kg virgin PET (default: 2.15)
	VirginEF float64 `env:"FACTOR_VIRGIN_EF" default:"2.15"`

	// PCRBenefit is kg CO2e avoided per kg converted to PCR (default: 1.70)
	PCRBenefit float64 `env:"FACTOR_PCR_BENEFIT" default:"1.70"`

	// BaselinePCRPercent is the customer's current packaging PCR% (default: 0)
	BaselinePCRPercent float64 `env:"FACTOR_BASELINE_PCR_PERCENT" default:"0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
