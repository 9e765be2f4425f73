package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	JWTSecret   string `env:"JWT_SECRET"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// CacheAfterVotes is the aggregate score a post must reach before its
	// snapshot is written to the cache.
	CacheAfterVotes int `env:"CACHE_AFTER_VOTES" default:"1"`

	// VoteRatePerSecond and VoteBurst bound how fast a single client may
	// hit the vote endpoint.
	VoteRatePerSecond float64 `env:"VOTE_RATE_PER_SECOND" default:"5"`
	VoteBurst         int     `env:"VOTE_BURST" default:"10"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_URL":    cfg.RedisURL,
		"JWT_SECRET":   cfg.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.CacheAfterVotes < 0 {
		return fmt.Errorf("CACHE_AFTER_VOTES must not be negative, got %d", cfg.CacheAfterVotes)
	}

	return nil
}
