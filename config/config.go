package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration, loaded from the environment.
type Config struct {
	HTTPAddr    string
	RedisURL    string
	DatabaseDSN string

	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	ReissueThreshold time.Duration
}

// Load reads configuration from the environment. Outside production a local
// .env file is loaded first if present.
func Load() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		// Missing .env just means everything comes from the host environment
		_ = godotenv.Load()
	}

	cfg := Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":9000"),
		RedisURL:    envOr("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	var err error
	if cfg.AccessTTL, err = durationOr("ACCESS_TOKEN_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTTL, err = durationOr("REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ReissueThreshold, err = durationOr("REISSUE_THRESHOLD", 72*time.Hour); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
