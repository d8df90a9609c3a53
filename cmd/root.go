package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathblitz/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "mathblitz",
	Short: "Timed arithmetic quiz with a shared leaderboard",
	Long:  "MathBlitz is a terminal arcade quiz: answer arithmetic questions against the clock, climb levels, and post your score to the leaderboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "mathblitz.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().String("server", "", "Leaderboard service URL (overrides MATHBLITZ_SERVER_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config and applies the
// persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if url, _ := cmd.Flags().GetString("server"); url != "" {
		cfg.Client.ServerURL = url
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, nil
}
