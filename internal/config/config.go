// Package config loads client configuration: the backend base address
// and a handful of TUI preferences.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is the local-development fallback when neither flag,
// environment, nor config file names a backend.
const DefaultBaseURL = "http://localhost:8000"

// EnvBaseURL overrides the configured backend base address.
const EnvBaseURL = "ASTROMIND_BASE_URL"

type Config struct {
	Backend BackendConfig `toml:"backend"`
	UI      UIConfig      `toml:"ui"`
}

type BackendConfig struct {
	BaseURL string `toml:"base_url"`
}

type UIConfig struct {
	// StartTab is "editor" or "pipeline".
	StartTab string `toml:"start_tab"`
}

// Load reads configuration from path, falling back to the default
// candidate locations when path is empty. Missing files are not an
// error; the environment override wins over the file either way.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{BaseURL: DefaultBaseURL},
		UI:      UIConfig{StartTab: "editor"},
	}

	if path == "" {
		candidates := []string{
			expandHome("~/.config/astromind/config.toml"),
			"./astromind.toml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
		}
	}

	if env := os.Getenv(EnvBaseURL); env != "" {
		cfg.Backend.BaseURL = env
	}
	return cfg, nil
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
