package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LogConfig configures the logging package
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

// Config holds everything the server needs. It is loaded once in main
// and passed into each component's constructor.
type Config struct {
	Port         string
	DatabasePath string
	BaseURL      string
	JWTSecret    string
	TokenTTL     time.Duration
	CORSOrigins  []string
	Log          LogConfig
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() *Config {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("HOMEVAULT_PORT", "8080"),
		DatabasePath: getEnv("HOMEVAULT_DB_PATH", "homevault.db"),
		BaseURL:      strings.TrimRight(getEnv("HOMEVAULT_BASE_URL", "http://localhost:8080"), "/"),
		JWTSecret:    getEnv("HOMEVAULT_JWT_SECRET", "homevault-dev-secret-change-in-production"),
		TokenTTL:     getDuration("HOMEVAULT_TOKEN_TTL", 24*time.Hour),
		CORSOrigins:  splitList(getEnv("HOMEVAULT_CORS_ORIGINS", "http://localhost:5173")),
		Log: LogConfig{
			Level:      getEnv("HOMEVAULT_LOG_LEVEL", "info"),
			File:       getEnv("HOMEVAULT_LOG_FILE", ""),
			MaxSizeMB:  getInt("HOMEVAULT_LOG_MAX_SIZE", 50),
			MaxAgeDays: getInt("HOMEVAULT_LOG_MAX_AGE", 14),
			MaxBackups: getInt("HOMEVAULT_LOG_MAX_BACKUPS", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
