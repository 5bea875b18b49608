// Package config loads service configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct.
// The struct uses `env` and `envDefault` tags:
//
//	type Config struct {
//	    Port      int    `env:"TRUST_HTTP_PORT" envDefault:"8010"`
//	    ModelPath string `env:"MODEL_PATH,required"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
