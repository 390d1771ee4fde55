package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Stage constants define the possible deployment/runtime environments.
// The logger keys its encoder choice off StageProd too.
const (
	StageProd  = "prod"
	StageDev   = "dev"
	StageLocal = "local"
)

// Config holds all runtime configuration for the API service.
// Values are read from environment variables, with a local .env file
// loaded first when present.
type Config struct {
	Stage    string
	Port     string
	LogLevel string

	// DatabaseURL is optional. When empty the service runs without
	// saved-chart persistence.
	DatabaseURL string

	// Payrail is the upstream payments API that owns the raw
	// transaction, refund, payout and dispute records.
	PayrailBaseURL string
	PayrailTimeout time.Duration

	// Gemini powers the chat assistant's natural-language-to-chart
	// translation.
	GeminiAPIKey string
	GeminiModel  string

	JWTSecret string

	AllowedOrigins []string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; missing required variables are.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Stage:          getEnv("STAGE", StageLocal),
		Port:           getEnv("API_PORT", "8000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		PayrailBaseURL: getEnv("PAYRAIL_BASE_URL", "https://api.payrail.co"),
		PayrailTimeout: getEnvDuration("PAYRAIL_TIMEOUT_SECONDS", 30) * time.Second,
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

// splitOrigins splits a comma-separated origin list, trimming whitespace
func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses an integer environment variable, falling back to
// the default on absence or parse failure.
func getEnvDuration(key string, defaultValue int64) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return time.Duration(parsed)
		}
	}
	return time.Duration(defaultValue)
}
