package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, arcade cabinet on a dark background.
var (
	Primary      = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary    = lipgloss.Color("#14B8A6") // Teal
	Accent       = lipgloss.Color("#F97316") // Orange
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#F43F5E") // Rose
	Warning      = lipgloss.Color("#EAB308") // Amber
	Text         = lipgloss.Color("#F8FAFC") // White
	TextDim      = lipgloss.Color("#94A3B8") // Slate
	BgDark       = lipgloss.Color("#0F172A") // Deep Navy
	BgCard       = lipgloss.Color("#1E293B") // Dark Slate
	Border       = lipgloss.Color("#334155") // Slate
	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Medal colors for the top three leaderboard rows.
var (
	Gold   = lipgloss.Color("#FFD700")
	Silver = lipgloss.Color("#C0C0C0")
	Bronze = lipgloss.Color("#CD7F32")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ArcadeYellow).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Question is the large arithmetic prompt on the game screen.
	Question = lipgloss.NewStyle().
			Bold(true).
			Foreground(ArcadeCyan)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(ArcadeYellow).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Dimmed = lipgloss.NewStyle().
		Foreground(TextDim)
)

// TimerColor returns the timer bar color for the remaining fraction of the
// question budget.
func TimerColor(fraction float64) lipgloss.Style {
	switch {
	case fraction > 0.5:
		return lipgloss.NewStyle().Background(Secondary)
	case fraction > 0.25:
		return lipgloss.NewStyle().Background(Warning)
	default:
		return lipgloss.NewStyle().Background(Error)
	}
}

// MedalColor returns the rank color for a zero-based leaderboard row.
func MedalColor(rank int) lipgloss.Style {
	switch rank {
	case 0:
		return lipgloss.NewStyle().Foreground(Gold).Bold(true)
	case 1:
		return lipgloss.NewStyle().Foreground(Silver).Bold(true)
	case 2:
		return lipgloss.NewStyle().Foreground(Bronze).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(Text)
}
