package config

// Config is the root configuration structure.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Player  PlayerConfig  `toml:"player"`
	Audio   AudioConfig   `toml:"audio"`
	Tail    TailConfig    `toml:"tail"`
	TUI     TUIConfig     `toml:"tui"`
	Log     LogConfig     `toml:"log"`
}

// CatalogConfig points at the track catalog.
type CatalogConfig struct {
	// Path to a TOML or YAML catalog. Empty uses the built-in demo catalog.
	Path string `toml:"path"`
}

// PlayerConfig holds playback settings applied at startup.
type PlayerConfig struct {
	Volume           int     `toml:"volume"`
	Speed            float64 `toml:"speed"`
	Shuffle          bool    `toml:"shuffle"`
	Repeat           string  `toml:"repeat"`
	CrossfadeSeconds float64 `toml:"crossfade_seconds"`
	CreditSeconds    int     `toml:"credit_seconds"`
	EQMinDB          float64 `toml:"eq_min_db"`
	EQMaxDB          float64 `toml:"eq_max_db"`
}

// AudioConfig holds output device settings.
type AudioConfig struct {
	SampleRate int `toml:"sample_rate"`
	BufferMS   int `toml:"buffer_ms"`
	Quality    int `toml:"resample_quality"`
}

// TailConfig holds settings for the event log printed by 'groove play'.
type TailConfig struct {
	Plain      bool   `toml:"plain"`
	Timestamps bool   `toml:"timestamps"`
	Format     string `toml:"format"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
	VisualizerBars  int    `toml:"visualizer_bars"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	Format     string `toml:"format"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}
