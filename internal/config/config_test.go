package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Player.Volume != 70 {
		t.Errorf("Player.Volume = %d, want 70", cfg.Player.Volume)
	}
	if cfg.Player.CrossfadeSeconds != 2 {
		t.Errorf("Player.CrossfadeSeconds = %v, want 2", cfg.Player.CrossfadeSeconds)
	}
	if cfg.Player.CreditSeconds != 30 {
		t.Errorf("Player.CreditSeconds = %d, want 30", cfg.Player.CreditSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[catalog]
path = "/music/catalog.yaml"

[player]
volume = 40
repeat = "one"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Catalog.Path != "/music/catalog.yaml" {
		t.Errorf("Catalog.Path = %q, want %q", cfg.Catalog.Path, "/music/catalog.yaml")
	}
	if cfg.Player.Volume != 40 {
		t.Errorf("Player.Volume = %d, want 40", cfg.Player.Volume)
	}
	if cfg.Player.Repeat != "one" {
		t.Errorf("Player.Repeat = %q, want %q", cfg.Player.Repeat, "one")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	// Unset values fall back to defaults
	if cfg.Player.Speed != 1 {
		t.Errorf("Player.Speed = %v, want 1", cfg.Player.Speed)
	}
	if cfg.TUI.Theme != "auto" {
		t.Errorf("TUI.Theme = %q, want %q", cfg.TUI.Theme, "auto")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GROOVE_PLAYER_VOLUME", "25")
	t.Setenv("GROOVE_PLAYER_SHUFFLE", "true")
	t.Setenv("GROOVE_LOG_LEVEL", "warn")
	t.Setenv("GROOVE_CATALOG_PATH", "/tmp/c.toml")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.Player.Volume != 25 {
		t.Errorf("Player.Volume = %d, want 25", cfg.Player.Volume)
	}
	if !cfg.Player.Shuffle {
		t.Error("Player.Shuffle = false, want true")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
	if cfg.Catalog.Path != "/tmp/c.toml" {
		t.Errorf("Catalog.Path = %q, want %q", cfg.Catalog.Path, "/tmp/c.toml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"volume too high", func(c *Config) { c.Player.Volume = 101 }, true},
		{"bad repeat", func(c *Config) { c.Player.Repeat = "sometimes" }, true},
		{"legacy repeat", func(c *Config) { c.Player.Repeat = "track" }, false},
		{"eq inverted", func(c *Config) { c.Player.EQMinDB = 6; c.Player.EQMaxDB = -6 }, true},
		{"bad theme", func(c *Config) { c.TUI.Theme = "neon" }, true},
		{"too many bars", func(c *Config) { c.TUI.VisualizerBars = 64 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"tail template", func(c *Config) { c.Tail.Format = "{{.Title}} by {{.Artist}}" }, false},
		{"broken tail template", func(c *Config) { c.Tail.Format = "{{.Title" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
