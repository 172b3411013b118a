// Package config loads process configuration for the admin CLI from
// environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the admin CLI
type Config struct {
	Redis   RedisConfig
	Module  ModuleConfig
	LogJSON bool `env:"LOG_JSON"`
}

// RedisConfig holds Redis-specific configuration. When URL is empty the
// CLI falls back to an in-memory spellbook store.
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// ModuleConfig holds module-level configuration
type ModuleConfig struct {
	Version string `env:"MODULE_VERSION" envDefault:"dev"`
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
