package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// versionInfo fills in what ldflags left unset from the embedded build
// info, which 'go install' always records.
func versionInfo() map[string]string {
	info := map[string]string{
		"version":    Version,
		"commit":     Commit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
		"platform":   runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info["version"] = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "unknown" {
				info["commit"] = s.Value
			}
		case "vcs.time":
			if BuildDate == "unknown" {
				info["build_date"] = s.Value
			}
		}
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo()
		if JSONOutput() {
			return printJSON(info)
		}

		fmt.Printf("groove %s\n", info["version"])
		if Verbose() {
			table := NewTable()
			table.Row("  commit:", info["commit"])
			table.Row("  built:", info["build_date"])
			table.Row("  go version:", info["go_version"])
			table.Row("  platform:", info["platform"])
			table.Flush()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
