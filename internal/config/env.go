package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables into a struct with env tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ServerEnv holds the HTTP server settings read from the environment
type ServerEnv struct {
	Port         int           `env:"SLIDETHEORY_PORT"          envDefault:"8080"`
	APIKey       string        `env:"GEMINI_API_KEY"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	ModelTier    string        `env:"SLIDETHEORY_MODEL_TIER"    envDefault:"standard"`
	CORSOrigin   string        `env:"SLIDETHEORY_CORS_ORIGIN"   envDefault:"*"`
	ReadTimeout  time.Duration `env:"SLIDETHEORY_READ_TIMEOUT"  envDefault:"15s"`
	WriteTimeout time.Duration `env:"SLIDETHEORY_WRITE_TIMEOUT" envDefault:"120s"`
}

// LoadServerEnv reads server settings from the environment
func LoadServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := ParseEnv(&cfg); err != nil {
		return ServerEnv{}, err
	}
	return cfg, nil
}
