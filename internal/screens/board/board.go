package board

import (
	"context"
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

const fetchTimeout = 5 * time.Second

// Source is where the screen reads the board from.
type Source interface {
	Fetch(ctx context.Context) ([]leaderboard.Entry, error)
	Watch(ctx context.Context) (<-chan []leaderboard.Entry, error)
}

type boardLoadedMsg struct {
	Entries []leaderboard.Entry
	Err     error
}

type liveStartedMsg struct {
	Updates <-chan []leaderboard.Entry
}

type liveUpdateMsg struct {
	Entries []leaderboard.Entry
	Updates <-chan []leaderboard.Entry
}

type liveEndedMsg struct{}

// BoardScreen shows the top scores and follows the live feed when the
// service offers one.
type BoardScreen struct {
	source    Source
	logger    zerolog.Logger
	highlight string

	entries []leaderboard.Entry
	loaded  bool
	live    bool
	errMsg  string

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*BoardScreen)(nil)
var _ screen.KeyHintProvider = (*BoardScreen)(nil)
var _ screen.Closer = (*BoardScreen)(nil)

// New creates a BoardScreen. highlight marks the player's own row.
func New(source Source, highlight string, logger zerolog.Logger) *BoardScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &BoardScreen{
		source:    source,
		logger:    logger,
		highlight: highlight,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *BoardScreen) Init() tea.Cmd {
	if s.source == nil {
		s.loaded = true
		s.errMsg = "No leaderboard service configured"
		return nil
	}
	return tea.Batch(s.fetch(), s.watch())
}

func (s *BoardScreen) fetch() tea.Cmd {
	ctx := s.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		entries, err := s.source.Fetch(ctx)
		return boardLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *BoardScreen) watch() tea.Cmd {
	ctx := s.ctx
	return func() tea.Msg {
		updates, err := s.source.Watch(ctx)
		if err != nil {
			s.logger.Debug().Err(err).Msg("live feed unavailable")
			return liveEndedMsg{}
		}
		return liveStartedMsg{Updates: updates}
	}
}

func waitForUpdate(updates <-chan []leaderboard.Entry) tea.Cmd {
	return func() tea.Msg {
		entries, ok := <-updates
		if !ok {
			return liveEndedMsg{}
		}
		return liveUpdateMsg{Entries: entries, Updates: updates}
	}
}

// Close stops the live feed.
func (s *BoardScreen) Close() {
	s.cancel()
}

func (s *BoardScreen) Title() string {
	return "Leaderboard"
}

func (s *BoardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BoardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.logger.Warn().Err(msg.Err).Msg("leaderboard fetch failed")
			s.errMsg = "Could not reach the leaderboard service"
			if !s.live {
				s.entries = nil
			}
			return s, nil
		}
		// A live board arriving first wins over a slower fetch.
		if !s.live {
			s.entries = msg.Entries
		}
		s.errMsg = ""
		return s, nil

	case liveStartedMsg:
		return s, waitForUpdate(msg.Updates)

	case liveUpdateMsg:
		s.live = true
		s.loaded = true
		s.errMsg = ""
		s.entries = msg.Entries
		return s, waitForUpdate(msg.Updates)

	case liveEndedMsg:
		s.live = false
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "r" && s.source != nil {
			return s, s.fetch()
		}
	}
	return s, nil
}

func (s *BoardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case !s.loaded:
		body = theme.Hint.Render("Loading...")
	default:
		body = RenderTable(s.entries, s.highlight, cw)
	}

	status := theme.Dimmed.Render("○ snapshot")
	switch {
	case s.live:
		status = lipgloss.NewStyle().Foreground(theme.Success).Render("● live")
	case s.errMsg != "":
		status = theme.Dimmed.Render("○ " + s.errMsg)
	}

	card := components.ArcadeCard("TOP 10", body+"\n\n"+status, cw, theme.ArcadeCyan)
	return components.Centered(card, width, height)
}
