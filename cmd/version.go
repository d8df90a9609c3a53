package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, build details and leaderboard server",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "mathblitz", resolveVersion())

		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Fprintf(out, "  go:      %s\n", info.GoVersion)
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					fmt.Fprintf(out, "  commit:  %s\n", s.Value[:7])
				}
			}
		}

		// A broken config file still prints the rest.
		if cfg, err := loadConfig(cmd); err == nil {
			fmt.Fprintf(out, "  server:  %s\n", cfg.Client.ServerURL)
		}
	},
}

// resolveVersion prefers the ldflags value, then the module version
// recorded by go install.
func resolveVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}
