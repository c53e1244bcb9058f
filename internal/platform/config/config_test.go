package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"dog-registry/internal/platform/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "4000" || cfg.Store != config.StoreMemory {
		t.Fatalf("defaults = %+v", cfg)
	}
	// sin origin explícito se deriva del puerto
	if cfg.Origin != "http://localhost:4000" {
		t.Fatalf("origin = %q", cfg.Origin)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	data := []byte("port = \"5000\"\nstore = \"sqlite\"\nsqlite_path = \"/tmp/dogs.db\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// el entorno pisa al archivo
	t.Setenv("PORT", "6000")
	t.Setenv("DEV", "1")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "6000" {
		t.Fatalf("port = %q, want env override", cfg.Port)
	}
	if cfg.Store != config.StoreSQLite || cfg.SQLitePath != "/tmp/dogs.db" {
		t.Fatalf("store = %q %q, want file values", cfg.Store, cfg.SQLitePath)
	}
	if !cfg.Dev {
		t.Fatal("DEV=1 must enable dev mode")
	}
	if cfg.Origin != "http://localhost:6000" {
		t.Fatalf("origin = %q, must follow the effective port", cfg.Origin)
	}
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE", "cassandra")
	if _, err := config.Load(""); err == nil {
		t.Fatal("unknown store must be rejected at load time")
	}
}
