package config

import (
	"fmt"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Load reads a governance.yaml file, expands environment variables, merges
// it over DefaultGovernanceConfig(), and validates the result. Matches the
// teacher's load→expand→parse→merge→validate pipeline
// (pkg/config/loader.go's Initialize), collapsed to this module's single
// config file.
func Load(path string) (*GovernanceConfig, error) {
	log := slog.With("config_path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewLoadError(path, ErrConfigNotFound)
		}
		return nil, NewLoadError(path, err)
	}

	expanded := ExpandEnv(data)

	var loaded GovernanceConfig
	if err := yaml.Unmarshal(expanded, &loaded); err != nil {
		return nil, NewLoadError(path, fmt.Errorf("%w: %v", ErrInvalidYAML, err))
	}

	cfg := DefaultGovernanceConfig()
	if err := mergo.Merge(cfg, loaded, mergo.WithOverride); err != nil {
		return nil, NewLoadError(path, fmt.Errorf("failed to merge configuration: %w", err))
	}

	if err := NewValidator(cfg).ValidateAll(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	log.Info("configuration loaded", "domain", cfg.Domain, "config_id", cfg.ConfigID)
	return cfg, nil
}
