package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvales/lingolog/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		DBPath:               "test.db",
		LogLevel:             "INFO",
		FreeDailyReviewLimit: 1,
		AttemptWriterCount:   2,
		AttemptQueueSize:     64,
		SessionTTLMinutes:    60,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "zero daily limit",
			mutate: func(c *config.Config) { c.FreeDailyReviewLimit = 0 },
			want:   "FREE_DAILY_REVIEW_LIMIT",
		},
		{
			name:   "zero writer count",
			mutate: func(c *config.Config) { c.AttemptWriterCount = 0 },
			want:   "ATTEMPT_WRITER_COUNT",
		},
		{
			name:   "negative queue size",
			mutate: func(c *config.Config) { c.AttemptQueueSize = -1 },
			want:   "ATTEMPT_QUEUE_SIZE",
		},
		{
			name:   "zero session ttl",
			mutate: func(c *config.Config) { c.SessionTTLMinutes = 0 },
			want:   "SESSION_TTL_MINUTES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "FREE_DAILY_REVIEW_LIMIT", "ATTEMPT_WRITER_COUNT", "ATTEMPT_QUEUE_SIZE", "SESSION_TTL_MINUTES"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:lingolog.db", cfg.DBPath)
	assert.Equal(t, 1, cfg.FreeDailyReviewLimit)
	assert.Equal(t, 2, cfg.AttemptWriterCount)
	assert.Equal(t, 64, cfg.AttemptQueueSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("FREE_DAILY_REVIEW_LIMIT", "3")
	t.Setenv("ATTEMPT_QUEUE_SIZE", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 3, cfg.FreeDailyReviewLimit)
	assert.Equal(t, 64, cfg.AttemptQueueSize, "invalid value should fall back to default")
}
