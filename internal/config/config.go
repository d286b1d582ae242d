package config

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the event tooling
type Config struct {
	Publisher PublisherConfig
	Redis     RedisConfig
	Log       LogConfig
}

// PublisherConfig holds publisher defaults
type PublisherConfig struct {
	Enabled bool
}

// RedisConfig holds the optional relay connection. An empty URL disables the relay.
type RedisConfig struct {
	URL    string
	Prefix string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level zapcore.Level
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	enabled, err := getEnvAsBoolOrDefault("PUBLISHER_ENABLED", true)
	if err != nil {
		return nil, err
	}

	level, err := zapcore.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	cfg := &Config{
		Publisher: PublisherConfig{
			Enabled: enabled,
		},
		Redis: RedisConfig{
			URL:    os.Getenv("REDIS_URL"),
			Prefix: getEnvOrDefault("RELAY_PREFIX", "events:"),
		},
		Log: LogConfig{
			Level: level,
		},
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, value)
	}
	return b, nil
}
