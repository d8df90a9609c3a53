package board

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

type fakeSource struct {
	entries  []leaderboard.Entry
	fetchErr error
	updates  chan []leaderboard.Entry
}

func (f *fakeSource) Fetch(context.Context) ([]leaderboard.Entry, error) {
	return f.entries, f.fetchErr
}

func (f *fakeSource) Watch(context.Context) (<-chan []leaderboard.Entry, error) {
	if f.updates == nil {
		return nil, errors.New("no live feed")
	}
	return f.updates, nil
}

func sampleBoard() []leaderboard.Entry {
	return []leaderboard.Entry{
		{Name: "ANN", Score: 40, Level: 4},
		{Name: "BOB", Score: 22, Level: 3},
	}
}

func TestFetchFallbackWithoutLiveFeed(t *testing.T) {
	src := &fakeSource{entries: sampleBoard()}
	s := New(src, "BOB", zerolog.Nop())

	s.Update(s.fetch()())
	s.Update(s.watch()())

	if s.live {
		t.Error("expected snapshot mode without a live feed")
	}
	view := s.View(80, 30)
	if !strings.Contains(view, "ANN") || !strings.Contains(view, "BOB") {
		t.Errorf("expected both names in view:\n%s", view)
	}
	if !strings.Contains(view, "◂") {
		t.Error("expected the player's row to be marked")
	}
}

func TestLiveUpdatesReplaceBoard(t *testing.T) {
	src := &fakeSource{entries: sampleBoard(), updates: make(chan []leaderboard.Entry, 2)}
	s := New(src, "", zerolog.Nop())

	_, cmd := s.Update(s.watch()())
	if cmd == nil {
		t.Fatal("expected a wait command once the feed is up")
	}

	src.updates <- []leaderboard.Entry{{Name: "CAT", Score: 99, Level: 5}}
	s.Update(cmd())
	if !s.live || len(s.entries) != 1 || s.entries[0].Name != "CAT" {
		t.Fatalf("expected live board with CAT, got live=%v %+v", s.live, s.entries)
	}

	// A slower snapshot must not overwrite the live board.
	s.Update(s.fetch()())
	if s.entries[0].Name != "CAT" {
		t.Errorf("snapshot overwrote live board: %+v", s.entries)
	}

	close(src.updates)
	_, next := s.Update(waitForUpdate(src.updates)())
	if next != nil || s.live {
		t.Error("closed feed should end live mode")
	}
}

func TestFetchErrorRendersEmptyBoard(t *testing.T) {
	src := &fakeSource{fetchErr: errors.New("connection refused")}
	s := New(src, "", zerolog.Nop())
	s.Update(s.fetch()())

	view := s.View(80, 30)
	if !strings.Contains(view, "No scores yet") {
		t.Errorf("expected an empty board on fetch failure:\n%s", view)
	}
	if !strings.Contains(view, "Could not reach") {
		t.Error("expected the failure in the status line")
	}
}

func TestFetchErrorClearsStaleSnapshot(t *testing.T) {
	src := &fakeSource{entries: sampleBoard()}
	s := New(src, "", zerolog.Nop())
	s.Update(s.fetch()())

	src.fetchErr = errors.New("connection refused")
	s.Update(s.fetch()())

	if len(s.entries) != 0 {
		t.Errorf("expected stale rows cleared, got %+v", s.entries)
	}
	if strings.Contains(s.View(80, 30), "ANN") {
		t.Error("stale rows still rendered")
	}
}

func TestEmptyBoard(t *testing.T) {
	s := New(&fakeSource{entries: []leaderboard.Entry{}}, "", zerolog.Nop())
	s.Update(s.fetch()())
	if !strings.Contains(s.View(80, 30), "No scores yet") {
		t.Error("expected empty-board hint")
	}
}

func TestRefreshKey(t *testing.T) {
	s := New(&fakeSource{}, "", zerolog.Nop())
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd == nil {
		t.Error("r should trigger a refresh")
	}
}

func TestCloseCancelsContext(t *testing.T) {
	s := New(&fakeSource{}, "", zerolog.Nop())
	s.Close()
	if s.ctx.Err() == nil {
		t.Error("expected context to be cancelled")
	}
}
