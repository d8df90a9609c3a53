package reset

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/screen"
	"github.com/abhisek/mathblitz/internal/ui/components"
	"github.com/abhisek/mathblitz/internal/ui/layout"
	"github.com/abhisek/mathblitz/internal/ui/theme"
)

const resetTimeout = 5 * time.Second

// Resetter clears the board.
type Resetter interface {
	Reset(ctx context.Context, password string) (leaderboard.ResetResult, error)
}

type resetDoneMsg struct {
	Result leaderboard.ResetResult
	Err    error
}

// ResetScreen asks for the admin password and clears the board.
type ResetScreen struct {
	resetter Resetter
	logger   zerolog.Logger
	input    components.TextInput

	pending bool
	done    bool
	message string
	ok      bool
}

var _ screen.Screen = (*ResetScreen)(nil)
var _ screen.KeyHintProvider = (*ResetScreen)(nil)

// New creates a ResetScreen.
func New(resetter Resetter, logger zerolog.Logger) *ResetScreen {
	return &ResetScreen{
		resetter: resetter,
		logger:   logger,
		input:    components.NewTextInput("password", 64).Masked(),
	}
}

func (s *ResetScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ResetScreen) Title() string {
	return "Reset Leaderboard"
}

func (s *ResetScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResetScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resetDoneMsg:
		s.pending = false
		switch {
		case msg.Err != nil:
			s.logger.Warn().Err(msg.Err).Msg("reset request failed")
			s.ok = false
			s.message = "Could not reach the leaderboard service"
		case msg.Result.OK:
			s.ok = true
			s.done = true
			s.message = "Leaderboard cleared"
		default:
			s.ok = false
			s.message = msg.Result.Error
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.pending || s.done {
			return s, nil
		}
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ResetScreen) submit() tea.Cmd {
	if s.resetter == nil {
		s.message = "No leaderboard service configured"
		return nil
	}
	password := s.input.Value()
	s.input.SetValue("")
	s.pending = true
	s.message = ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
		defer cancel()
		res, err := s.resetter.Reset(ctx, password)
		return resetDoneMsg{Result: res, Err: err}
	}
}

func (s *ResetScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	if !s.done {
		b.WriteString(theme.Body.Render("Admin password"))
		b.WriteString("\n\n")
		b.WriteString(s.input.View())
		b.WriteString("\n\n")
	}

	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Resetting..."))
	case s.message != "" && s.ok:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(s.message))
	case s.message != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.message))
	default:
		b.WriteString(theme.Hint.Render("This removes every score."))
	}

	card := components.ArcadeCard("RESET", b.String(), cw, theme.Error)
	return components.Centered(card, width, height)
}
