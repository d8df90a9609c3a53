package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblitz/internal/ui/theme"
)

// ChoiceMadeMsg reports the option the player committed to.
type ChoiceMadeMsg struct {
	Index int
}

// MultiChoice is the four-button answer pad. It only reports a pick; the
// caller decides whether the pick still counts.
type MultiChoice struct {
	Options  []string
	Selected int

	// Set once the round resolves, for colouring.
	Resolved    bool
	CorrectIdx  int
	ChosenIndex int
}

// NewMultiChoice creates an unresolved pad over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, CorrectIdx: -1, ChosenIndex: -1}
}

// Resolve freezes the pad and marks the correct and chosen options.
// chosen is -1 on a timeout.
func (m MultiChoice) Resolve(correct, chosen int) MultiChoice {
	m.Resolved = true
	m.CorrectIdx = correct
	m.ChosenIndex = chosen
	return m
}

// Update handles arrow navigation, Enter, and the 1-4 hotkeys.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Resolved || len(m.Options) == 0 {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left", "h":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j", "right", "l":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		return m, choose(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'0') <= len(m.Options) {
			m.Selected = int(key[0] - '1')
			return m, choose(m.Selected)
		}
	}
	return m, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMadeMsg{Index: i} }
}

// View renders the options as numbered buttons.
func (m MultiChoice) View(width int) string {
	rows := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		label := fmt.Sprintf("%d   %s", i+1, opt)
		style := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder())

		switch {
		case m.Resolved && i == m.CorrectIdx:
			style = style.Foreground(theme.Success).BorderForeground(theme.Success).Bold(true)
		case m.Resolved && i == m.ChosenIndex:
			style = style.Foreground(theme.Error).BorderForeground(theme.Error).Bold(true)
		case m.Resolved:
			style = style.Foreground(theme.TextDim).BorderForeground(theme.Border)
		case i == m.Selected:
			style = style.Foreground(theme.ArcadeYellow).BorderForeground(theme.ArcadeYellow).Bold(true)
		default:
			style = style.Foreground(theme.Text).BorderForeground(theme.Border)
		}
		rows = append(rows, style.Render(label))
	}
	return strings.Join(rows, "\n")
}
