package config

import (
	"errors"
	"fmt"
	"text/template"

	"github.com/tessro/groove/internal/core"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.Audio.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("audio: %w", err))
	}
	if err := c.Tail.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tail: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	var errs []error
	if c.Volume < 0 || c.Volume > 100 {
		errs = append(errs, errors.New("volume must be between 0 and 100"))
	}
	if c.Speed < 0 {
		errs = append(errs, errors.New("speed must be positive"))
	}
	if _, err := core.ParseRepeatMode(c.Repeat); err != nil {
		errs = append(errs, err)
	}
	if c.CrossfadeSeconds < 0 {
		errs = append(errs, errors.New("crossfade_seconds must be non-negative"))
	}
	if c.CreditSeconds < 0 {
		errs = append(errs, errors.New("credit_seconds must be non-negative"))
	}
	if c.EQMinDB > c.EQMaxDB {
		errs = append(errs, errors.New("eq_min_db must not exceed eq_max_db"))
	}
	return errors.Join(errs...)
}

// Validate checks AudioConfig for errors.
func (c *AudioConfig) Validate() error {
	if c.SampleRate < 0 {
		return errors.New("sample_rate must be non-negative")
	}
	if c.BufferMS < 0 {
		return errors.New("buffer_ms must be non-negative")
	}
	if c.Quality < 0 || c.Quality > 64 {
		return errors.New("resample_quality must be between 1 and 64")
	}
	return nil
}

// Validate checks TailConfig for errors.
func (c *TailConfig) Validate() error {
	if c.Format == "" {
		return nil
	}
	if _, err := template.New("tail").Parse(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "mocha", "macchiato", "frappe", "latte":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, mocha, macchiato, frappe, or latte)", c.Theme)
	}
	if c.RefreshInterval < 0 {
		return errors.New("refresh_interval must be non-negative")
	}
	if c.VisualizerBars < 0 || c.VisualizerBars > core.FrequencyBins {
		return fmt.Errorf("visualizer_bars must be between 1 and %d", core.FrequencyBins)
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	switch c.Format {
	case "", "console", "json":
		// valid
	default:
		return fmt.Errorf("invalid log format: %s (must be console or json)", c.Format)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return errors.New("rotation limits must be non-negative")
	}
	return nil
}
