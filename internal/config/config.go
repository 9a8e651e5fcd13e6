package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EngineConfig holds the scoring thresholds and run shape.
type EngineConfig struct {
	HighThreshold   float64 `yaml:"high_threshold"`
	MediumThreshold float64 `yaml:"medium_threshold"`
	Workers         int     `yaml:"workers"`
}

// RecheckConfig bounds the asynchronous recomputation pass.
type RecheckConfig struct {
	Attempts       int `yaml:"attempts"`
	TimeoutMinutes int `yaml:"timeout_minutes"`
}

// Config is the root service configuration.
type Config struct {
	DataDir  string        `yaml:"data_dir"`
	Database string        `yaml:"database"`
	Engine   EngineConfig  `yaml:"engine"`
	Recheck  RecheckConfig `yaml:"recheck"`
}

// Load reads a config from path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	// Unmarshal over the defaults so absent keys keep them and an
	// explicit zero in the file stays zero.
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func Default() Config {
	return Config{
		Database: "repository.db",
		Engine: EngineConfig{
			HighThreshold:   70,
			MediumThreshold: 50,
		},
		Recheck: RecheckConfig{
			Attempts:       3,
			TimeoutMinutes: 5,
		},
	}
}
