package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mercado")
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "*", cfg.AllowOrigins)
	assert.Equal(t, "s3cret", cfg.SecretKey)
}

func TestLoad_MissingSecretKeyFails(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mercado")
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/mercado")
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("ADDR", ":8081")
	t.Setenv("TOKEN_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Addr)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}
