package config

import (
	"fmt"

	"github.com/caarlos0/env/v7"
)

// FromEnv reads the configuration from the environment.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
