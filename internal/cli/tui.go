package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/groove/internal/tui"
)

var (
	tuiRefresh int
	tuiTheme   string
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive player",
	Long: `Launch the interactive terminal player.

The player provides a live view with:
  • Now Playing - current track, progress, settings, visualizer
  • Tracks - the current playlist, or search results
  • Queue - tracks playing next
  • Playlists - built-in and your own playlists
  • History / For You / Stats - recent plays, suggestions, listening stats

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  /            Search
  Enter        Play selection
  Space        Play/Pause
  n / p        Next / Previous track
  +/-          Volume up/down
  e            Equalizer
  Tab          Switch panel`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "refresh interval in milliseconds (default from config)")
	tuiCmd.Flags().StringVar(&tuiTheme, "theme", "", "color theme: auto, latte, frappe, macchiato, mocha")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	s, err := openSession(cat)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	opts := tui.Options{
		RefreshInterval: time.Duration(cfg.TUI.RefreshInterval) * time.Millisecond,
		VisualizerBars:  cfg.TUI.VisualizerBars,
		Theme:           cfg.TUI.Theme,
	}
	if tuiRefresh > 0 {
		opts.RefreshInterval = time.Duration(tuiRefresh) * time.Millisecond
	}
	if tuiTheme != "" {
		opts.Theme = tuiTheme
	}

	if err := tui.Run(s, opts); err != nil {
		return err
	}

	// Likes and playlist edits made in the player.
	if cfg.Catalog.Path != "" {
		return saveCatalog(cat)
	}
	return nil
}
