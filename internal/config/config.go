package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds everything the process needs at startup. SECRET_KEY has no
// default on purpose: tokens must never be signed with a baked-in value, so
// the process refuses to start without it.
type Config struct {
	Addr         string        `env:"ADDR" envDefault:":3000"`
	DatabaseURL  string        `env:"DATABASE_URL,required,notEmpty"`
	SecretKey    string        `env:"SECRET_KEY,required,notEmpty"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	AllowOrigins string        `env:"CORS_ORIGINS" envDefault:"*"`
}

func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
