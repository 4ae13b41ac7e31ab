package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFirstRunWritesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabasePath != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	path, _ := Path()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(string(data), "database_path") {
		t.Fatalf("unexpected config contents:\n%s", data)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.DatabasePath = "/tmp/elsewhere.db"
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.DatabasePath != "/tmp/elsewhere.db" {
		t.Fatalf("round trip lost values: %+v", got)
	}
}

func TestDBPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	path, err := cfg.DBPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "tempo.db" {
		t.Fatalf("unexpected default db path: %s", path)
	}

	cfg.DatabasePath = "/tmp/custom.db"
	path, err = cfg.DBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/custom.db" {
		t.Fatalf("explicit path not honored: %s", path)
	}
}
