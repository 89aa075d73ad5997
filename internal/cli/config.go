package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/groove/internal/config"
	grooveerrors "github.com/tessro/groove/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing groove configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, including defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(getConfigPath())
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  catalog.path             Catalog file (.toml or .yaml)
  player.volume            Startup volume (0-100)
  player.speed             Startup playback rate
  player.shuffle           Startup shuffle state (true/false)
  player.repeat            Startup repeat mode (off/all/one)
  player.crossfade_seconds Fade-out before a track ends
  player.credit_seconds    Seconds of play before a track counts as played
  tail.plain               Print events without emoji (true/false)
  tail.timestamps          Prefix events with the time (true/false)
  tail.format              Go template for event lines
  tui.theme                auto, latte, frappe, macchiato or mocha
  tui.refresh_interval     Player refresh in milliseconds
  log.level                debug, info, warn or error
  log.file                 Log file path

Examples:
  groove config set catalog.path ~/Music/groove.toml
  groove config set player.volume 50`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetThemeCmd = &cobra.Command{
	Use:   "set-theme",
	Short: "Interactively select the color theme",
	RunE:  runConfigSetTheme,
}

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
)

// settableKeys lists the keys 'config set' accepts and how to parse them.
var settableKeys = map[string]valueKind{
	"catalog.path":             kindString,
	"player.volume":            kindInt,
	"player.speed":             kindFloat,
	"player.shuffle":           kindBool,
	"player.repeat":            kindString,
	"player.crossfade_seconds": kindFloat,
	"player.credit_seconds":    kindInt,
	"player.eq_min_db":         kindFloat,
	"player.eq_max_db":         kindFloat,
	"audio.sample_rate":        kindInt,
	"audio.buffer_ms":          kindInt,
	"audio.resample_quality":   kindInt,
	"tail.plain":               kindBool,
	"tail.timestamps":          kindBool,
	"tail.format":              kindString,
	"tui.theme":                kindString,
	"tui.refresh_interval":     kindInt,
	"tui.visualizer_bars":      kindInt,
	"log.level":                kindString,
	"log.file":                 kindString,
	"log.format":               kindString,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetThemeCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return printJSON(cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", grooveerrors.ErrConfigNotFound, configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return err
	}

	edited, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("%w: %v", grooveerrors.ErrInvalidConfig, err)
	}
	if err := edited.Validate(); err != nil {
		return fmt.Errorf("%w: %v", grooveerrors.ErrInvalidConfig, err)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}
	fmt.Printf("Created config file: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Build a catalog from your music with 'groove scan ~/Music'")
	fmt.Println("  2. Point groove at it with 'groove config set catalog.path ~/Music/groove.toml'")
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}

func writeConfigFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintln(f, "# Groove Configuration")
	_, _ = fmt.Fprintln(f, "# https://github.com/tessro/groove")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// parseValue converts a command-line value to the type stored under key.
func parseValue(key, value string) (any, error) {
	kind, ok := settableKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown key %q. Run 'groove config set --help' for the list", key)
	}

	switch kind {
	case kindInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer for %s", key)
		}
		return i, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("value must be a number for %s", key)
		}
		return f, nil
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("value must be true or false for %s", key)
		}
		return b, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typedValue, err := parseValue(key, value)
	if err != nil {
		return err
	}

	configPath := getConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", grooveerrors.ErrConfigNotFound, configPath)
	}

	// Edit the raw document so keys groove does not know survive.
	var rawConfig map[string]any
	if _, err := toml.DecodeFile(configPath, &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := rawConfig[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		rawConfig[section] = sectionMap
	}
	sectionMap[field] = typedValue

	if err := validateRaw(rawConfig); err != nil {
		return err
	}
	if err := writeConfigFile(configPath, rawConfig); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

// validateRaw round-trips the edited document through Config so an
// invalid value is rejected before it is written.
func validateRaw(raw map[string]any) error {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return err
	}
	var c config.Config
	if _, err := toml.Decode(buf.String(), &c); err != nil {
		return fmt.Errorf("%w: %v", grooveerrors.ErrInvalidConfig, err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %v", grooveerrors.ErrInvalidConfig, err)
	}
	return nil
}

func runConfigSetTheme(cmd *cobra.Command, args []string) error {
	themes := []struct{ id, label string }{
		{"auto", "Auto (follow terminal background)"},
		{"latte", "Latte (light)"},
		{"frappe", "Frappé"},
		{"macchiato", "Macchiato"},
		{"mocha", "Mocha (dark)"},
	}

	var options []huh.Option[string]
	for _, t := range themes {
		label := t.label
		if t.id == cfg.TUI.Theme {
			label += " [current]"
		}
		options = append(options, huh.NewOption(label, t.id))
	}

	selected := cfg.TUI.Theme
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select theme").
				Description("Colors used by 'groove ui'").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	return runConfigSet(cmd, []string{"tui.theme", selected})
}
