package board

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/ui/theme"
)

// RenderTable renders ranked entries. Rows named highlight are marked.
func RenderTable(entries []leaderboard.Entry, highlight string, width int) string {
	if len(entries) == 0 {
		return theme.Hint.Render("No scores yet. Be the first!")
	}

	header := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%-4s %-12s %7s %5s  %-10s", "#", "NAME", "SCORE", "LVL", "DATE"))

	rows := []string{header}
	for i, e := range entries {
		line := fmt.Sprintf("%-4s %-12s %7d %5d  %-10s",
			fmt.Sprintf("%d.", i+1), e.Name, e.Score, e.Level, formatDate(e))
		style := theme.MedalColor(i)
		if highlight != "" && e.Name == highlight {
			style = style.Background(theme.BgCard).Foreground(theme.ArcadeCyan)
			line += " ◂"
		}
		rows = append(rows, style.Render(line))
	}

	return lipgloss.NewStyle().
		Width(min(width, 52)).
		Render(strings.Join(rows, "\n"))
}

func formatDate(e leaderboard.Entry) string {
	if e.Date.IsZero() {
		return "-"
	}
	return e.Date.Local().Format("2006-01-02")
}
