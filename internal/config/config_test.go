package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cedar.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8740 {
		t.Errorf("port = %d, want 8740", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v, want info/text", cfg.Log)
	}
	if cfg.Canon.Path != "" {
		t.Errorf("canon path = %q, want empty", cfg.Canon.Path)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  allowed_origins:
    - https://example.com
canon:
  path: /var/lib/cedar/canon.json
  checksum: deadbeef
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("origins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Canon.Path != "/var/lib/cedar/canon.json" || cfg.Canon.Checksum != "deadbeef" {
		t.Errorf("canon = %+v", cfg.Canon)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8740 {
		t.Errorf("port = %d, want default 8740", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("format = %q, want default text", cfg.Log.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(writeConfig(t, ": not yaml [")); err == nil {
		t.Error("malformed YAML should fail")
	}
	if _, err := Load(writeConfig(t, "server:\n  port: -1\n")); err == nil {
		t.Error("invalid port should fail")
	}
}
