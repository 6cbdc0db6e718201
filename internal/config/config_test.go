package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	content := `
[rates]
exp_rate = 2.0

[session]
id = "campaign-7"
random_seed = 42

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Rates.ExpRate != 2.0 {
		t.Fatalf("exp_rate = %v", cfg.Rates.ExpRate)
	}
	if cfg.Rates.GoldRate != 1.0 {
		t.Fatalf("gold_rate = %v, want the default preserved", cfg.Rates.GoldRate)
	}
	if cfg.Session.ID != "campaign-7" || cfg.Session.RandomSeed != 42 {
		t.Fatalf("session = %+v", cfg.Session)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
	if cfg.Paths.SeedWorld != "data/world.yaml" {
		t.Fatalf("seed_world = %q, want the default", cfg.Paths.SeedWorld)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
