package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tessro/groove/internal/config"
	grooveerrors "github.com/tessro/groove/internal/errors"
	"github.com/tessro/groove/internal/logger"
)

var (
	cfgFile     string
	catalogFile string
	jsonOut     bool
	verbose     bool

	cfg *config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "groove",
	Short: "Play your local music library from the terminal",
	Long: `Groove is a terminal music player for a local catalog of tracks.

It keeps a play queue and history, builds playlists, learns your taste
from what you listen to, and recommends what to play next.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.grooverc)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog file (.toml or .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig(cmd *cobra.Command) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", grooveerrors.ErrInvalidConfig, err)
	}

	if catalogFile != "" {
		cfg.Catalog.Path = catalogFile
	}

	// The dashboard owns the terminal, so it only logs to file.
	var console io.Writer = os.Stderr
	if cmd.Name() == "ui" {
		console = nil
	}
	log, err = newLogger(console)
	return err
}

func newLogger(console io.Writer) (*zap.Logger, error) {
	lc := logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
	if verbose {
		lc.Level = "debug"
		lc.Console = console
	}
	l, err := logger.New(lc)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, grooveerrors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
