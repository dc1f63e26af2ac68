package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.Backend.BaseURL)
	}
	if cfg.UI.StartTab != "editor" {
		t.Fatalf("expected editor start tab, got %q", cfg.UI.StartTab)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[backend]\nbase_url = \"http://astromind.internal:9000\"\n\n[ui]\nstart_tab = \"pipeline\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://astromind.internal:9000" {
		t.Fatalf("unexpected base url %q", cfg.Backend.BaseURL)
	}
	if cfg.UI.StartTab != "pipeline" {
		t.Fatalf("unexpected start tab %q", cfg.UI.StartTab)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[backend]\nbase_url = \"http://from-file:9000\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(EnvBaseURL, "http://from-env:7000")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://from-env:7000" {
		t.Fatalf("expected env override, got %q", cfg.Backend.BaseURL)
	}
}
