package server

import (
	"sync"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

// Hub fans board snapshots out to live subscribers. Slow subscribers only
// ever see the latest board.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan []leaderboard.Entry]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan []leaderboard.Entry]struct{})}
}

// Subscribe registers a subscriber primed with initial. The cancel func
// unregisters and closes the channel.
func (h *Hub) Subscribe(initial []leaderboard.Entry) (<-chan []leaderboard.Entry, func()) {
	ch := make(chan []leaderboard.Entry, 1)
	ch <- initial

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Broadcast sends board to every subscriber, replacing any update they have
// not consumed yet.
func (h *Hub) Broadcast(board []leaderboard.Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- board:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- board
		}
	}
}

// Len returns the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
