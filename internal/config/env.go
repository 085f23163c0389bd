package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RunSettings are the CLI defaults; flags override them.
type RunSettings struct {
	ConfigDir  string  `env:"STAGESIM_CONFIG_DIR" envDefault:"assets"`
	Stage      string  `env:"STAGESIM_STAGE" envDefault:"stage_1_1"`
	Seed       int64   `env:"STAGESIM_SEED" envDefault:"12345"`
	Runs       int     `env:"STAGESIM_RUNS" envDefault:"1"`
	Workers    int     `env:"STAGESIM_WORKERS" envDefault:"8"`
	Tick       float64 `env:"STAGESIM_TICK" envDefault:"0.1"`
	MaxSeconds float64 `env:"STAGESIM_MAX_SECONDS" envDefault:"180"`
	Out        string  `env:"STAGESIM_OUT" envDefault:"out.json"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadRunSettings() (RunSettings, error) {
	var s RunSettings
	if err := ParseEnv(&s); err != nil {
		return RunSettings{}, err
	}
	return s, nil
}
