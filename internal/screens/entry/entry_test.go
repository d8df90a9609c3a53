package entry

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathblitz/internal/router"
	"github.com/abhisek/mathblitz/internal/screen"
)

type stubScreen struct{ name string }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return s.name }
func (s *stubScreen) Title() string                          { return "Game" }

func keyPress(s string) tea.KeyPressMsg {
	if s == "enter" {
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

func typeText(s *EntryScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(string(r)))
	}
}

func TestFiltersInputLive(t *testing.T) {
	s := New("", nil)
	typeText(s, "ab!c_1")
	if got := s.input.Value(); got != "ABC1" {
		t.Errorf("expected ABC1, got %q", got)
	}
}

func TestCapsLength(t *testing.T) {
	s := New("", nil)
	typeText(s, "abcdefghijklmnop")
	if got := s.input.Value(); len(got) != 12 {
		t.Errorf("expected 12 characters, got %q", got)
	}
}

func TestEnterStartsGame(t *testing.T) {
	var got string
	s := New("", func(name string) screen.Screen {
		got = name
		return &stubScreen{name: name}
	})
	typeText(s, " zed ")

	_, cmd := s.Update(keyPress("enter"))
	if cmd == nil {
		t.Fatal("expected a screen change")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if got != "ZED" {
		t.Errorf("expected normalized ZED, got %q", got)
	}
}

func TestBlankNameRejected(t *testing.T) {
	called := false
	s := New("", func(string) screen.Screen { called = true; return nil })
	typeText(s, "   ")

	if _, cmd := s.Update(keyPress("enter")); cmd != nil {
		t.Error("blank name should not start a game")
	}
	if called || s.errMsg == "" {
		t.Error("expected an error message and no game")
	}
}

func TestPrefill(t *testing.T) {
	s := New("bob!", nil)
	if s.input.Value() != "BOB" {
		t.Errorf("expected BOB, got %q", s.input.Value())
	}
}
