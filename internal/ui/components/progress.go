package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblitz/internal/ui/theme"
)

// TimerBar is the countdown bar under the question.
type TimerBar struct {
	Fraction  float64
	Remaining time.Duration
	Width     int
}

// NewTimerBar creates a timer bar for the remaining fraction of a budget.
func NewTimerBar(fraction float64, remaining time.Duration, width int) TimerBar {
	return TimerBar{Fraction: fraction, Remaining: remaining, Width: width}
}

// View renders the bar followed by the seconds left.
func (p TimerBar) View() string {
	label := fmt.Sprintf(" %4.1fs", p.Remaining.Seconds())
	barWidth := p.Width - lipgloss.Width(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth)*p.Fraction + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	return theme.TimerColor(p.Fraction).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		theme.Dimmed.Render(label)
}
