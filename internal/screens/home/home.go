package home

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/router"
	"github.com/abhisek/mathblitz/internal/screen"
	"github.com/abhisek/mathblitz/internal/screens/board"
	"github.com/abhisek/mathblitz/internal/screens/entry"
	"github.com/abhisek/mathblitz/internal/screens/game"
	"github.com/abhisek/mathblitz/internal/screens/gameover"
	"github.com/abhisek/mathblitz/internal/screens/reset"
	"github.com/abhisek/mathblitz/internal/screens/welcome"
	"github.com/abhisek/mathblitz/internal/session"
	"github.com/abhisek/mathblitz/internal/ui/components"
	"github.com/abhisek/mathblitz/internal/ui/theme"
)

const buttonWidth = 22

// Deps are the collaborators the home screen hands to the screens it opens.
type Deps struct {
	// Client is nil when playing offline.
	Client     *leaderboard.Client
	Logger     zerolog.Logger
	Rand       *rand.Rand
	Generator  session.QuestionGenerator
	PlayerName string
}

type topLoadedMsg struct {
	Entries []leaderboard.Entry
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps     Deps
	menu     components.Menu
	lastName string
	best     *leaderboard.Entry
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, lastName: deps.PlayerName}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PLAY", Action: push(func() screen.Screen {
			return entry.New(h.lastName, h.startGame)
		})},
		{Label: "LEADERBOARD", Action: push(func() screen.Screen {
			var src board.Source
			if deps.Client != nil {
				src = deps.Client
			}
			return board.New(src, h.lastName, deps.Logger)
		})},
		{Label: "RESET BOARD", Action: push(func() screen.Screen {
			var r reset.Resetter
			if deps.Client != nil {
				r = deps.Client
			}
			return reset.New(r, deps.Logger)
		})},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

// startGame remembers the name and builds the game screen for it.
func (h *HomeScreen) startGame(name string) screen.Screen {
	h.lastName = name
	var sub gameover.Submitter
	if h.deps.Client != nil {
		sub = h.deps.Client
	}
	return game.New(game.Config{
		PlayerName: name,
		Rand:       h.deps.Rand,
		Generator:  h.deps.Generator,
		Logger:     h.deps.Logger,
		Submitter:  sub,
	})
}

func (h *HomeScreen) Init() tea.Cmd {
	client := h.deps.Client
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return topLoadedMsg{Entries: client.Top(ctx)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(topLoadedMsg); ok {
		if len(m.Entries) > 0 {
			best := m.Entries[0]
			h.best = &best
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		welcome.RenderBanner(width, 5),
		h.renderBest(cw),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View(buttonWidth)),
	}

	return components.Centered(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderBest(cw int) string {
	text := theme.Dimmed.Render("No high score yet")
	switch {
	case h.deps.Client == nil:
		text = theme.Dimmed.Render("Offline: scores are not recorded")
	case h.best != nil:
		text = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
			Render(fmt.Sprintf("★ HIGH SCORE  %s  %d", h.best.Name, h.best.Score))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(text)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
