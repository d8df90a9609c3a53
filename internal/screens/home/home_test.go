package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/router"
	"github.com/abhisek/mathblitz/internal/screens/board"
	"github.com/abhisek/mathblitz/internal/screens/entry"
	"github.com/abhisek/mathblitz/internal/screens/game"
	"github.com/abhisek/mathblitz/internal/screens/reset"
)

func pressNumber(t *testing.T, h *HomeScreen, key string) tea.Msg {
	t.Helper()
	_, cmd := h.Update(tea.KeyPressMsg{Code: []rune(key)[0], Text: key})
	if cmd == nil {
		t.Fatalf("expected a command for %q", key)
	}
	return cmd()
}

func TestMenuOpensScreens(t *testing.T) {
	h := New(Deps{Logger: zerolog.Nop()})

	tests := []struct {
		key   string
		check func(screen any) bool
	}{
		{"1", func(s any) bool { _, ok := s.(*entry.EntryScreen); return ok }},
		{"2", func(s any) bool { _, ok := s.(*board.BoardScreen); return ok }},
		{"3", func(s any) bool { _, ok := s.(*reset.ResetScreen); return ok }},
	}
	for _, tt := range tests {
		msg, ok := pressNumber(t, h, tt.key).(router.PushScreenMsg)
		if !ok {
			t.Fatalf("key %s: expected PushScreenMsg", tt.key)
		}
		if !tt.check(msg.Screen) {
			t.Errorf("key %s: unexpected screen %T", tt.key, msg.Screen)
		}
	}
}

func TestQuit(t *testing.T) {
	h := New(Deps{Logger: zerolog.Nop()})
	if _, ok := pressNumber(t, h, "4").(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestStartGameRemembersName(t *testing.T) {
	h := New(Deps{Logger: zerolog.Nop()})
	if _, ok := h.startGame("ANN").(*game.GameScreen); !ok {
		t.Fatal("expected a game screen")
	}
	if h.lastName != "ANN" {
		t.Errorf("expected last name ANN, got %q", h.lastName)
	}
}

func TestOfflineAndHighScore(t *testing.T) {
	h := New(Deps{Logger: zerolog.Nop()})
	if h.Init() != nil {
		t.Error("offline home should not fetch")
	}
	if !strings.Contains(h.View(100, 40), "Offline") {
		t.Error("expected offline notice")
	}

	online := New(Deps{Client: leaderboard.NewClient("http://127.0.0.1:1"), Logger: zerolog.Nop()})
	online.Update(topLoadedMsg{Entries: []leaderboard.Entry{{Name: "ZED", Score: 77}}})
	if !strings.Contains(online.View(100, 40), "ZED") {
		t.Error("expected the high score holder")
	}
}
