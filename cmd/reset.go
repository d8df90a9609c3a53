package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the leaderboard (requires the admin password)",
	Long: `Clear every leaderboard entry on the configured service.

The password is read from --password, or from the first line of stdin.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().String("password", "", "Admin password")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Admin password: ")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if scanner.Scan() {
			password = strings.TrimSpace(scanner.Text())
		}
	}
	if password == "" {
		return errors.New("a password is required")
	}

	client := leaderboard.NewClient(cfg.Client.ServerURL, leaderboard.WithTimeout(cfg.ClientTimeout()))
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ClientTimeout())
	defer cancel()

	res, err := client.Reset(ctx, password)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("reset refused: %s", res.Error)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Leaderboard cleared.")
	return nil
}
