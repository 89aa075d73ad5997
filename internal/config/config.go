package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.grooverc, $XDG_CONFIG_HOME/groove/config.toml, ~/.config/groove/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	loadDotEnv()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	loadDotEnv()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultPath returns the path 'groove config init' writes to.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".grooverc"
	}
	return filepath.Join(home, ".grooverc")
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".grooverc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "groove", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// loadDotEnv reads a .env file from the working directory, if present.
// Variables already set in the environment win.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Catalog
	if v := os.Getenv("GROOVE_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}

	// Player
	if v := os.Getenv("GROOVE_PLAYER_VOLUME"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.Volume = i
		}
	}
	if v := os.Getenv("GROOVE_PLAYER_SPEED"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Player.Speed = f
		}
	}
	if v := os.Getenv("GROOVE_PLAYER_SHUFFLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Player.Shuffle = b
		}
	}
	if v := os.Getenv("GROOVE_PLAYER_REPEAT"); v != "" {
		cfg.Player.Repeat = v
	}

	// TUI
	if v := os.Getenv("GROOVE_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("GROOVE_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("GROOVE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GROOVE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
