package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Jayvieeeee/digital-repositories-sub000/internal/config"
)

func TestEnsureAtProvisionsLayout(t *testing.T) {
	base := filepath.Join(t.TempDir(), "engine")
	info, err := EnsureAt(base)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if info.Root != base {
		t.Fatalf("unexpected root: %q", info.Root)
	}
	if _, err := os.Stat(info.ConfigPath); err != nil {
		t.Fatalf("expected seeded config file: %v", err)
	}
	if filepath.Dir(info.DatabasePath) != filepath.Join(base, "data") {
		t.Fatalf("unexpected database location: %q", info.DatabasePath)
	}
}

func TestEnsureAtCreatesCustomDataDir(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "engine")
	if _, err := EnsureAt(base); err != nil {
		t.Fatalf("first ensure: %v", err)
	}

	custom := config.Default()
	custom.DataDir = filepath.Join(root, "elsewhere", "storage")
	configPath := filepath.Join(base, "configs", "config.yaml")
	if err := config.Save(configPath, custom); err != nil {
		t.Fatalf("save custom config: %v", err)
	}

	info, err := EnsureAt(base)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if filepath.Dir(info.DatabasePath) != custom.DataDir {
		t.Fatalf("unexpected database location: %q", info.DatabasePath)
	}
	fi, err := os.Stat(custom.DataDir)
	if err != nil {
		t.Fatalf("expected custom data dir to exist: %v", err)
	}
	if !fi.IsDir() {
		t.Fatalf("custom data dir is not a directory")
	}
}

func TestEnsureAtKeepsExistingConfig(t *testing.T) {
	base := filepath.Join(t.TempDir(), "engine")
	if _, err := EnsureAt(base); err != nil {
		t.Fatalf("first ensure: %v", err)
	}

	custom := config.Default()
	custom.Engine.HighThreshold = 80
	custom.DataDir = filepath.Join(base, "data")
	configPath := filepath.Join(base, "configs", "config.yaml")
	if err := config.Save(configPath, custom); err != nil {
		t.Fatalf("save custom config: %v", err)
	}

	info, err := EnsureAt(base)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	cfg, err := config.Load(info.ConfigPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.HighThreshold != 80 {
		t.Fatalf("expected existing config to survive, got %.1f", cfg.Engine.HighThreshold)
	}
}
