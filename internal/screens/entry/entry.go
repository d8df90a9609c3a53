package entry

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/router"
	"github.com/abhisek/mathblitz/internal/screen"
	"github.com/abhisek/mathblitz/internal/ui/components"
	"github.com/abhisek/mathblitz/internal/ui/layout"
	"github.com/abhisek/mathblitz/internal/ui/theme"
)

// EntryScreen asks for the player's name before a game.
type EntryScreen struct {
	input   components.TextInput
	start   func(name string) screen.Screen
	errMsg  string
	started bool
}

var _ screen.Screen = (*EntryScreen)(nil)
var _ screen.KeyHintProvider = (*EntryScreen)(nil)

// New creates an EntryScreen prefilled with lastName. start builds the game
// screen for the accepted name.
func New(lastName string, start func(name string) screen.Screen) *EntryScreen {
	input := components.NewTextInput("YOUR NAME", leaderboard.MaxNameLength).
		WithFilter(leaderboard.FilterNameInput)
	input.SetValue(leaderboard.FilterNameInput(lastName))
	return &EntryScreen{input: input, start: start}
}

func (s *EntryScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *EntryScreen) Title() string {
	return "Player"
}

func (s *EntryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *EntryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		if s.started {
			return s, nil
		}
		name, err := leaderboard.NormalizeName(s.input.Value())
		if err != nil {
			s.errMsg = "Enter a name using letters, digits, spaces or dashes"
			return s, nil
		}
		s.started = true
		next := s.start(name)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if _, ok := msg.(tea.KeyPressMsg); ok {
		s.errMsg = ""
	}
	return s, cmd
}

func (s *EntryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Body.Render("Who's playing?"))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	} else {
		b.WriteString(theme.Hint.Render("Up to 12 characters: A-Z, 0-9, space, dash"))
	}

	card := components.ArcadeCard("ENTER NAME", b.String(), cw, theme.ArcadeYellow)
	return components.Centered(card, width, height)
}
