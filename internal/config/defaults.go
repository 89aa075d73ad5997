package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			Volume:           70,
			Speed:            1,
			Shuffle:          false,
			Repeat:           "off",
			CrossfadeSeconds: 2,
			CreditSeconds:    30,
			EQMinDB:          -12,
			EQMaxDB:          12,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			BufferMS:   100,
			Quality:    4,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 250,
			VisualizerBars:  32,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Player
	if c.Player.Volume == 0 {
		c.Player.Volume = d.Player.Volume
	}
	if c.Player.Speed == 0 {
		c.Player.Speed = d.Player.Speed
	}
	if c.Player.Repeat == "" {
		c.Player.Repeat = d.Player.Repeat
	}
	if c.Player.CrossfadeSeconds == 0 {
		c.Player.CrossfadeSeconds = d.Player.CrossfadeSeconds
	}
	if c.Player.CreditSeconds == 0 {
		c.Player.CreditSeconds = d.Player.CreditSeconds
	}
	if c.Player.EQMinDB == 0 && c.Player.EQMaxDB == 0 {
		c.Player.EQMinDB = d.Player.EQMinDB
		c.Player.EQMaxDB = d.Player.EQMaxDB
	}

	// Audio
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = d.Audio.SampleRate
	}
	if c.Audio.BufferMS == 0 {
		c.Audio.BufferMS = d.Audio.BufferMS
	}
	if c.Audio.Quality == 0 {
		c.Audio.Quality = d.Audio.Quality
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}
	if c.TUI.VisualizerBars == 0 {
		c.TUI.VisualizerBars = d.TUI.VisualizerBars
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = d.Log.MaxAgeDays
	}
}
