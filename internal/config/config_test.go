package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/breadit")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.CacheAfterVotes)
	assert.Equal(t, 5.0, cfg.VoteRatePerSecond)
	assert.Equal(t, 10, cfg.VoteBurst)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_AFTER_VOTES", "25")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.CacheAfterVotes)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsNegativeThreshold(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_AFTER_VOTES", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_AFTER_VOTES")
}
