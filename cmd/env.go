package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/partonsim/partonsim/shower"
)

// envConfig holds the PARTONSIM_* environment overrides. Pointer fields are
// nil when the variable is unset.
type envConfig struct {
	ConfigPath string `env:"PARTONSIM_CONFIG"`
	LogLevel   string `env:"PARTONSIM_LOG"`
	Seed       *int64 `env:"PARTONSIM_SEED"`
	Events     *int   `env:"PARTONSIM_EVENTS"`
	Workers    *int   `env:"PARTONSIM_WORKERS"`
	DBPath     string `env:"PARTONSIM_DB"`

	ECM     *float64 `env:"PARTONSIM_ECM"`
	Process string   `env:"PARTONSIM_PROCESS"`
	MI      *bool    `env:"PARTONSIM_MI"`

	OTelEndpoint string `env:"PARTONSIM_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"PARTONSIM_OTEL_ENABLED" envDefault:"true"`
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// applyEnvToFlags fills the run flags the user did not set on the command line.
func applyEnvToFlags(cmd *cobra.Command, e envConfig) {
	changed := cmd.Flags().Changed
	if e.LogLevel != "" && !changed("log") {
		logLevel = e.LogLevel
	}
	if e.Seed != nil && !changed("seed") {
		seed = *e.Seed
	}
	if e.Events != nil && !changed("events") {
		numEvents = *e.Events
	}
	if e.Workers != nil && !changed("workers") {
		workers = *e.Workers
	}
	if e.DBPath != "" && !changed("db") {
		dbPath = e.DBPath
	}
}

// applyEnvToConfig overrides file values; changed flags are applied later
// and win over both.
func applyEnvToConfig(cfg *shower.Config, e envConfig) {
	if e.ECM != nil {
		cfg.ECM = *e.ECM
	}
	if e.Process != "" {
		cfg.Process = e.Process
	}
	if e.MI != nil {
		cfg.MI.Enabled = *e.MI
	}
}
