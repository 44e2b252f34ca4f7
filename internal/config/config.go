package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	FreeDailyReviewLimit int
	AttemptWriterCount   int
	AttemptQueueSize     int
	SessionTTLMinutes    int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:lingolog.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		FreeDailyReviewLimit: envIntOr("FREE_DAILY_REVIEW_LIMIT", 1),
		AttemptWriterCount:   envIntOr("ATTEMPT_WRITER_COUNT", 2),
		AttemptQueueSize:     envIntOr("ATTEMPT_QUEUE_SIZE", 64),
		SessionTTLMinutes:    envIntOr("SESSION_TTL_MINUTES", 60),
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.FreeDailyReviewLimit < 1 {
		return fmt.Errorf("FREE_DAILY_REVIEW_LIMIT must be at least 1, got %d", c.FreeDailyReviewLimit)
	}
	if c.AttemptWriterCount < 1 {
		return fmt.Errorf("ATTEMPT_WRITER_COUNT must be at least 1, got %d", c.AttemptWriterCount)
	}
	if c.AttemptQueueSize < 1 {
		return fmt.Errorf("ATTEMPT_QUEUE_SIZE must be at least 1, got %d", c.AttemptQueueSize)
	}
	if c.SessionTTLMinutes < 1 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be at least 1, got %d", c.SessionTTLMinutes)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
