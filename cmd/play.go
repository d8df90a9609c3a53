package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblitz/internal/app"
	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/logging"
	"github.com/abhisek/mathblitz/internal/problemgen"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Player name to prefill")
	cmd.Flags().Bool("offline", false, "Play without the leaderboard service")
	cmd.Flags().Uint64("seed", 0, "Question seed (0 picks a random one)")
	cmd.Flags().Bool("no-splash", false, "Skip the welcome screen")
}

// runPlay builds the client and logger and launches the TUI. The TUI owns
// the terminal, so logs go to a file.
func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = logging.DefaultFile()
	}
	logger, closer, err := logging.New(logging.Options{Level: cfg.Log.Level, File: logFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	name, _ := cmd.Flags().GetString("name")
	offline, _ := cmd.Flags().GetBool("offline")
	seed, _ := cmd.Flags().GetUint64("seed")
	noSplash, _ := cmd.Flags().GetBool("no-splash")

	if seed == 0 {
		seed = rand.Uint64()
	}

	var client *leaderboard.Client
	if !offline && cfg.Client.ServerURL != "" {
		client = leaderboard.NewClient(cfg.Client.ServerURL,
			leaderboard.WithTimeout(cfg.ClientTimeout()),
			leaderboard.WithLogger(logger),
		)
	}

	logger.Info().
		Uint64("seed", seed).
		Bool("offline", client == nil).
		Str("server", cfg.Client.ServerURL).
		Msg("starting game")

	return app.Run(app.Options{
		Client:     client,
		Logger:     logger,
		Rand:       problemgen.NewRand(seed),
		PlayerName: leaderboard.FilterNameInput(name),
		SkipSplash: noSplash,
	})
}
