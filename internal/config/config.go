// Package config loads preview-server and CLI settings from the
// environment. Every knob has a default; Load only fails on values that
// cannot work at all.
package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server      ServerConfig
	Logging     LoggingConfig
	RateLimit   RateLimitConfig
	Environment string
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

// LoggingConfig selects log verbosity and output shape. Format is "json"
// or "console".
type LoggingConfig struct {
	Level  string
	Format string
}

// RateLimitConfig bounds per-client request rates on the preview server.
// PerSecond zero disables limiting.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "127.0.0.1"),
			Port:    getEnvInt("SERVER_PORT", 8080),
			BaseURL: getEnv("SERVER_BASE_URL", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			PerSecond: getEnvFloat("RATE_LIMIT_PER_SECOND", 20),
			Burst:     getEnvInt("RATE_LIMIT_BURST", 40),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("SERVER_PORT %d out of range", cfg.Server.Port)
	}
	if cfg.RateLimit.PerSecond < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_PER_SECOND must not be negative")
	}
	if cfg.RateLimit.Burst < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST must not be negative")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
