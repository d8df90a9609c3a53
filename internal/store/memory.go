package store

import (
	"context"
	"sync"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

// Memory is an in-process Board.
type Memory struct {
	mu       sync.RWMutex
	entries  []leaderboard.Entry
	capacity int
}

// NewMemory creates an empty in-memory board.
func NewMemory(capacity int) *Memory {
	return &Memory{capacity: capacity}
}

func (m *Memory) Top(_ context.Context, limit int) ([]leaderboard.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]leaderboard.Entry, 0, len(m.entries))
	out = append(out, leaderboard.Cap(m.entries, limitOr(limit, m.capacity))...)
	return out, nil
}

func (m *Memory) Submit(_ context.Context, e leaderboard.Entry) ([]leaderboard.Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	board, changed := leaderboard.Merge(m.entries, e, m.capacity)
	m.entries = board
	out := make([]leaderboard.Entry, len(board))
	copy(out, board)
	return out, changed, nil
}

func (m *Memory) Reset(context.Context) error {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
