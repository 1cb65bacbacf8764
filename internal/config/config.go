package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the CLI
type Config struct {
	// API Configuration
	API APIConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds settings for the backend API client
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// Backend base URL is the one value with no sane default
	baseURL := os.Getenv("KYC_API_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("KYC_API_BASE_URL environment variable is not set")
	}

	// Per-request timeout in seconds
	timeout := 30 * time.Second
	if v := os.Getenv("KYC_API_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid KYC_API_TIMEOUT value: %q", v)
		}
		timeout = time.Duration(secs) * time.Second
	}

	// Retry budget for idempotent requests
	maxRetries := 3
	if v := os.Getenv("KYC_API_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid KYC_API_MAX_RETRIES value: %q", v)
		}
		maxRetries = n
	}

	// Logging configuration - defaults suitable for interactive use
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		API: APIConfig{
			BaseURL:    baseURL,
			Timeout:    timeout,
			MaxRetries: maxRetries,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
