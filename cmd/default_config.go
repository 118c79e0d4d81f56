package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/partonsim/partonsim/shower"
)

// loadConfig decodes the YAML file at path over shower.DefaultConfig, so a
// file only needs the fields it changes. An empty path returns the defaults.
// Unknown fields are errors: a typo must not silently fall back to a default.
func loadConfig(path string) (shower.Config, error) {
	cfg := shower.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// marshalConfig renders cfg in the format loadConfig reads.
func marshalConfig(cfg shower.Config) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(out), nil
}
