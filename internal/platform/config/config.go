// Package config loads service configuration from the environment so main
// stays lean. Values are read once at startup and treated as immutable.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable the server needs.
type Config struct {
	// Server
	Addr string

	// DatabaseURL selects the Postgres feedback store when set; the
	// in-memory store is used otherwise.
	DatabaseURL string

	// RedisURL selects the Redis wizard session store when set.
	RedisURL string

	// KafkaBrokers enables the submission event publisher when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// SessionTTL bounds how long an abandoned wizard run is kept.
	SessionTTL time.Duration

	// SubmitTimeout bounds one submission round trip.
	SubmitTimeout time.Duration

	// FeedbackEndpoint, when set, makes the wizard submit over HTTP instead
	// of in-process. Used when the feedback endpoint is deployed separately.
	FeedbackEndpoint string

	// SubmitRatePerMinute limits /feedback posts per client IP.
	SubmitRatePerMinute int
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	cfg := Config{
		Addr:                getEnv("PRAKAN_ADDR", ":8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            os.Getenv("REDIS_URL"),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "feedback.submitted"),
		SessionTTL:          getEnvDuration("SESSION_TTL", 24*time.Hour),
		SubmitTimeout:       getEnvDuration("SUBMIT_TIMEOUT", 10*time.Second),
		FeedbackEndpoint:    os.Getenv("FEEDBACK_ENDPOINT"),
		SubmitRatePerMinute: getEnvInt("SUBMIT_RATE_PER_MINUTE", 30),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
