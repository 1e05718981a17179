package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"invoicectl/internal/logger"
)

// Config is the environment-driven application configuration.
type Config struct {
	// Backend API Configuration
	APIBaseURL string
	ClientID   string
	// HTTPTimeout bounds every backend request. The backend specifies no
	// timeout of its own, so the client always sets one.
	HTTPTimeout time.Duration

	// Booking defaults
	DefaultAccountCode string

	// Local batch state
	BatchDBPath string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	timeoutSecs, err := strconv.Atoi(getEnv("INVOICE_HTTP_TIMEOUT", "120"))
	if err != nil || timeoutSecs <= 0 {
		return nil, fmt.Errorf("INVOICE_HTTP_TIMEOUT must be a positive number of seconds")
	}

	config := &Config{
		APIBaseURL:         getEnv("INVOICE_API_BASE", "http://localhost:8000"),
		ClientID:           getEnv("INVOICE_CLIENT_ID", "test-client"),
		HTTPTimeout:        time.Duration(timeoutSecs) * time.Second,
		DefaultAccountCode: getEnv("INVOICE_DEFAULT_ACCOUNT_CODE", "200"),
		BatchDBPath:        getEnv("INVOICE_BATCH_DB", "invoicectl.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:      getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:          getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("INVOICE_API_BASE is required")
	}
	if c.BatchDBPath == "" {
		return fmt.Errorf("INVOICE_BATCH_DB is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config.
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
