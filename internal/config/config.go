// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the API server will bind to.
	ServerHost string
	// ServerPort is the port number the API server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// DisclosureSecret is the shared signing secret used by both the issuing
	// and the validating side of the token authority. It is injected once at
	// startup so the two sides can never drift.
	DisclosureSecret string

	// TokenTTL is the validity window applied to newly issued disclosure tokens.
	TokenTTL time.Duration
	// TokenTTLFloor is the minimum TTL the orchestrator will issue tokens with,
	// so a disclosure window is always long enough to be human-perceivable.
	TokenTTLFloor time.Duration
	// MaxSessionDuration is the ceiling on how long a disclosure session may
	// stay open, independent of the token's own remaining validity.
	MaxSessionDuration time.Duration

	// CardDataFile is an optional path to a JSON snapshot of sensitive card
	// records. When empty, the embedded default snapshot is used.
	CardDataFile string

	// RateLimitEnabled indicates whether rate limiting for the disclosure open
	// endpoint is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of open requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for open request rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Disclosure token configuration
		DisclosureSecret:   env.GetString("DISCLOSURE_SECRET", ""),
		TokenTTL:           env.GetDuration("TOKEN_TTL_SECONDS", 25, time.Second),
		TokenTTLFloor:      env.GetDuration("TOKEN_TTL_FLOOR_SECONDS", 5, time.Second),
		MaxSessionDuration: env.GetDuration("MAX_SESSION_SECONDS", 60, time.Second),

		// Sensitive card data
		CardDataFile: env.GetString("CARD_DATA_FILE", ""),

		// Rate limiting for the disclosure open endpoint (IP-based)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "cardvault"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
