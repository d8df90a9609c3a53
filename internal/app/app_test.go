package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathblitz/internal/router"
	"github.com/abhisek/mathblitz/internal/screens/home"
	"github.com/abhisek/mathblitz/internal/screens/welcome"
)

func TestStartsOnSplash(t *testing.T) {
	m := newAppModel(Options{Logger: zerolog.Nop()})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("expected welcome screen, got %T", m.router.Active())
	}
}

func TestSkipSplash(t *testing.T) {
	m := newAppModel(Options{Logger: zerolog.Nop(), SkipSplash: true})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("expected home screen, got %T", m.router.Active())
	}
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m := newAppModel(Options{Logger: zerolog.Nop(), SkipSplash: true})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}

	m.router.Update(router.PushScreenMsg{Screen: home.New(home.Deps{Logger: zerolog.Nop()})})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestHeaderShowsAppName(t *testing.T) {
	model, _ := newAppModel(Options{Logger: zerolog.Nop(), SkipSplash: true}).
		Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(model.(AppModel).render(), "MathBlitz") {
		t.Error("expected the app name in the header")
	}
}

func TestViewTooSmall(t *testing.T) {
	model, _ := newAppModel(Options{Logger: zerolog.Nop(), SkipSplash: true}).
		Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(model.(AppModel).render(), "Terminal too small") {
		t.Error("expected the resize message")
	}
}
