package cmd

import (
	"context"
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/ui/theme"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the current leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		client := leaderboard.NewClient(cfg.Client.ServerURL, leaderboard.WithTimeout(cfg.ClientTimeout()))
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ClientTimeout())
		defer cancel()

		entries, err := client.Fetch(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No scores yet.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderBoard(entries))
		return nil
	},
}

func renderBoard(entries []leaderboard.Entry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Name,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Level),
			e.Date.Local().Format("2006-01-02"),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("#", "NAME", "SCORE", "LVL", "DATE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Title.Padding(0, 1)
			}
			return theme.MedalColor(row).Padding(0, 1)
		}).
		String()
}
