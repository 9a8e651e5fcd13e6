package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jayvieeeee/digital-repositories-sub000/internal/config"
)

const BaseDirName = "RepositorySimilarity"

// Info points at the provisioned on-disk layout for the engine.
type Info struct {
	Root         string
	ConfigPath   string
	DatabasePath string
}

func EnsureDefault() (*Info, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home: %w", err)
	}
	return EnsureAt(filepath.Join(home, BaseDirName))
}

// EnsureAt provisions the engine data directory under base: the sqlite
// database location and a config file seeded with defaults if absent.
func EnsureAt(base string) (*Info, error) {
	paths := []string{
		filepath.Join(base, "configs"),
		filepath.Join(base, "data"),
	}
	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	configPath := filepath.Join(base, "configs", "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaults := config.Default()
		defaults.DataDir = filepath.Join(base, "data")
		if err := config.Save(configPath, defaults); err != nil {
			return nil, fmt.Errorf("seed config: %w", err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(base, "data")
	}
	// A custom data_dir in the config lives outside base and is not
	// covered by the directories above.
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dataDir, err)
	}

	return &Info{
		Root:         base,
		ConfigPath:   configPath,
		DatabasePath: filepath.Join(dataDir, cfg.Database),
	}, nil
}
