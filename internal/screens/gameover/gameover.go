package gameover

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathblitz/internal/difficulty"
	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/router"
	"github.com/abhisek/mathblitz/internal/screen"
	"github.com/abhisek/mathblitz/internal/screens/board"
	"github.com/abhisek/mathblitz/internal/session"
	"github.com/abhisek/mathblitz/internal/ui/components"
	"github.com/abhisek/mathblitz/internal/ui/layout"
	"github.com/abhisek/mathblitz/internal/ui/theme"
)

const submitTimeout = 5 * time.Second

// Submitter records a finished game and returns the updated board.
type Submitter interface {
	Submit(ctx context.Context, s leaderboard.Submission) ([]leaderboard.Entry, error)
}

type submittedMsg struct {
	Board []leaderboard.Entry
	Err   error
}

// GameOverScreen shows the final result and the board after submission.
type GameOverScreen struct {
	result    session.Result
	submitter Submitter
	playAgain func() screen.Screen
	logger    zerolog.Logger

	board     []leaderboard.Entry
	submitted bool
	errMsg    string
	leaving   bool
}

var _ screen.Screen = (*GameOverScreen)(nil)
var _ screen.KeyHintProvider = (*GameOverScreen)(nil)

// New creates a GameOverScreen. playAgain builds the next game screen; nil
// disables replay.
func New(result session.Result, submitter Submitter, playAgain func() screen.Screen, logger zerolog.Logger) *GameOverScreen {
	return &GameOverScreen{
		result:    result,
		submitter: submitter,
		playAgain: playAgain,
		logger:    logger,
	}
}

func (s *GameOverScreen) Init() tea.Cmd {
	if s.submitter == nil {
		s.submitted = true
		s.errMsg = "Playing offline, score not submitted"
		return nil
	}
	sub := s.result.Submission()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		b, err := s.submitter.Submit(ctx, sub)
		return submittedMsg{Board: b, Err: err}
	}
}

func (s *GameOverScreen) Title() string {
	return "Game Over"
}

func (s *GameOverScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.playAgain != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Play again"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *GameOverScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		s.submitted = true
		if msg.Err != nil {
			s.logger.Warn().Err(msg.Err).
				Str("session_id", s.result.SessionID).
				Msg("score submission failed")
			s.errMsg = "Could not submit score"
			return s, nil
		}
		s.board = msg.Board
		return s, nil

	case tea.KeyPressMsg:
		if s.leaving {
			return s, nil
		}
		switch msg.String() {
		case "enter", "space":
			if s.playAgain == nil {
				return s, nil
			}
			s.leaving = true
			next := s.playAgain()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "q", "h":
			s.leaving = true
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *GameOverScreen) View(width, height int) string {
	r := s.result
	cw := components.ContentWidth(width)

	reason := "Wrong answer!"
	if r.TimedOut {
		reason = "Time's up!"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(reason))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(r.PlayerName))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("SCORE %d", r.Score)))
	b.WriteString("\n")
	b.WriteString(theme.Dimmed.Render(fmt.Sprintf("Level %d · %s · %s",
		r.Level(), difficulty.At(r.LevelIndex).Name, formatDuration(r.Duration()))))
	b.WriteString("\n\n")

	switch {
	case !s.submitted:
		b.WriteString(theme.Hint.Render("Submitting score..."))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.errMsg))
	default:
		b.WriteString(board.RenderTable(s.board, r.PlayerName, cw))
	}

	card := components.ArcadeCard("GAME OVER", b.String(), cw, theme.Error)
	return components.Centered(card, width, height)
}

func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
