package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration. The token secret lives here
// and is injected into the token service at startup; nothing reads it from
// the environment after Load returns.
type Config struct {
	ServerPort     int
	DatabasePath   string
	TokenSecret    string
	TokenTTL       time.Duration
	TrainingDelay  time.Duration
	AllowedOrigins []string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "5000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	trainingDelay, err := time.ParseDuration(getEnv("TRAINING_DELAY", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRAINING_DELAY: %w", err)
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./voiceai.db"),
		TokenSecret:    getEnv("JWT_SECRET", "voiceai-secret-key-2024"),
		TokenTTL:       tokenTTL,
		TrainingDelay:  trainingDelay,
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
