package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

// File is a Board kept in a JSON file. Writes go to a temp file that is
// renamed over the target, so readers never see a partial board.
type File struct {
	mu       sync.Mutex
	path     string
	capacity int
}

// NewFile creates a file-backed board at path. The file is created on the
// first write.
func NewFile(path string, capacity int) *File {
	return &File{path: path, capacity: capacity}
}

// load reads the board. A missing or unreadable file is an empty board.
func (f *File) load() []leaderboard.Entry {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	var entries []leaderboard.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	leaderboard.Rank(entries)
	return entries
}

func (f *File) save(entries []leaderboard.Entry) error {
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".leaderboard-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *File) Top(_ context.Context, limit int) ([]leaderboard.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := leaderboard.Cap(f.load(), limitOr(limit, f.capacity))
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	return entries, nil
}

func (f *File) Submit(_ context.Context, e leaderboard.Entry) ([]leaderboard.Entry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	board, changed := leaderboard.Merge(f.load(), e, f.capacity)
	if changed {
		if err := f.save(board); err != nil {
			return nil, false, fmt.Errorf("saving leaderboard: %w", err)
		}
	}
	return board, changed, nil
}

func (f *File) Reset(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.save(nil); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("resetting leaderboard: %w", err)
	}
	return nil
}

func (f *File) Close() error { return nil }
