package app

import (
	"os"
	"time"
)

type Config struct {
	APIBaseURL   string        // Base URL of the SmartPark backend (default: http://localhost:8000)
	CacheFile    string        // Path to the SQLite cache file (default: ./parkmobile.db)
	CacheKeyFile string        // Path to the at-rest seal key file (default: ./parkmobile.key)
	HTTPTimeout  time.Duration // Transport-level request timeout (default: 10s)
	Env          string        // Environment (dev, prod) (default: dev)
	LogLevel     string        // Log level (debug, info, warn, error) (default: info)
	LogFormat    string        // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		APIBaseURL:   getEnvOrDefault("PARK_API_URL", "http://localhost:8000"),
		CacheFile:    getEnvOrDefault("PARK_CACHE_FILE", "parkmobile.db"),
		CacheKeyFile: getEnvOrDefault("PARK_CACHE_KEY_FILE", "parkmobile.key"),
		HTTPTimeout:  getEnvDurationOrDefault("PARK_HTTP_TIMEOUT", 10*time.Second),
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
