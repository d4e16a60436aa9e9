package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DATABASE_DSN", "AUTH_JWT_SECRET", "SECRET", "AUTH_TOKEN_TTL_HOURS", "REDIS_ADDR", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5001", cfg.App.Addr())
	assert.Equal(t, "", cfg.Database.DSN)
	assert.True(t, cfg.Database.RunMigrations)
	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.True(t, cfg.Auth.UsesDefaultSecret())
	assert.Equal(t, 8*time.Hour, cfg.Auth.TokenTTL())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SECRET", "legacy")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "2")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("DATABASE_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "legacy", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Auth.UsesDefaultSecret())
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL())
	assert.Zero(t, cfg.App.RequestTimeout())
	assert.False(t, cfg.Database.RunMigrations)

	t.Setenv("AUTH_JWT_SECRET", "primary")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Auth.JWTSecret)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	assert.Error(t, err)
}
