package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblitz/internal/ui/components"
	"github.com/abhisek/mathblitz/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	if s.rejectedErr != nil {
		msg := lipgloss.NewStyle().Foreground(theme.Error).Render("Can't start: enter a name with letters or digits.")
		return components.Centered(msg+"\n\n"+theme.Hint.Render("Esc to go back"), width, height)
	}
	if s.question == nil {
		return components.Centered(theme.Hint.Render("Get ready..."), width, height)
	}

	cw := components.ContentWidth(width)
	st := s.ctrl.State()

	var b strings.Builder

	info := theme.Dimmed.Render(fmt.Sprintf("Level %d · %s · Q%d", s.level.Number(), s.level.Name, st.Answered+1))
	b.WriteString(info)
	b.WriteString("\n\n")

	b.WriteString(components.NewTimerBar(s.ctrl.TimeFraction(s.now), s.ctrl.Remaining(s.now), cw).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Question.Render(s.question.Text + " = ?"))
	b.WriteString("\n\n")

	b.WriteString(s.pad.View(min(cw, 24)))
	b.WriteString("\n")

	switch {
	case s.feedback == "":
		b.WriteString(" ")
	case s.feedbackOK:
		b.WriteString(theme.Correct.Render(s.feedback))
	default:
		b.WriteString(theme.Incorrect.Render(s.feedback))
	}

	if s.levelUp != "" {
		banner := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Padding(0, 2).
			Render("★ " + s.levelUp + " ★")
		b.WriteString("\n\n")
		b.WriteString(banner)
	}

	content := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(b.String())
	return components.Centered(content, width, height)
}
