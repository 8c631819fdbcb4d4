// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	DBPath    string `env:"DB_PATH" envDefault:"./data/roommate.db"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	GinMode   string `env:"GIN_MODE" envDefault:"release"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
