package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, 30, cfg.SubmitRatePerMinute)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PRAKAN_ADDR", ":9999")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SUBMIT_RATE_PER_MINUTE", "5")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.SubmitRatePerMinute)
}

func TestFromEnvBadValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("SUBMIT_RATE_PER_MINUTE", "lots")

	cfg := FromEnv()

	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30, cfg.SubmitRatePerMinute)
}
