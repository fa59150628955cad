package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the process environment. Flags override these
// when both are set; the environment exists for containerized batch runs.
type Env struct {
	Seed      int64  `env:"WARSIM_SEED" envDefault:"0"`
	MaxTicks  int    `env:"WARSIM_MAX_TICKS" envDefault:"10000"`
	Cols      int    `env:"WARSIM_COLS" envDefault:"40"`
	Rows      int    `env:"WARSIM_ROWS" envDefault:"30"`
	RolesPath string `env:"WARSIM_ROLES"`
	DBPath    string `env:"WARSIM_DB"`
	LogLevel  string `env:"WARSIM_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &e, nil
}
