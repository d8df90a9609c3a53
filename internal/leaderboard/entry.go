package leaderboard

import (
	"sort"
	"time"
)

// MaxEntries is the number of entries the board keeps and clients show.
const MaxEntries = 10

// Entry is one leaderboard row.
type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Level int       `json:"level"`
	Date  time.Time `json:"date"`
}

// Submission is a finished game sent to the service.
type Submission struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	SessionID string `json:"session_id,omitempty"`
}

// SubmitResponse is the service reply to a submission.
type SubmitResponse struct {
	OK    bool    `json:"ok"`
	Error string  `json:"error,omitempty"`
	Board []Entry `json:"board,omitempty"`
}

// ResetRequest carries the admin password.
type ResetRequest struct {
	Password string `json:"password"`
}

// ResetResult is the service reply to a reset. Error is the server's reason
// and is shown to the user verbatim.
type ResetResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// LiveMessage is the frame pushed over the live websocket feed.
type LiveMessage struct {
	Type    string  `json:"type"`
	Payload []Entry `json:"payload"`
}

// LiveMessageBoard is the LiveMessage type carrying a full board.
const LiveMessageBoard = "board"

// Less orders entries by score descending, then earlier date, then name.
func Less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.Name < b.Name
}

// Rank sorts entries in place into board order.
func Rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return Less(entries[i], entries[j]) })
}

// Merge records e on board: a name keeps only its best score, replaced only
// by a strictly higher one. The result is ranked and trimmed to limit.
// The second result reports whether the board changed.
func Merge(board []Entry, e Entry, limit int) ([]Entry, bool) {
	out := make([]Entry, 0, len(board)+1)
	changed := true
	for _, cur := range board {
		if cur.Name != e.Name {
			out = append(out, cur)
			continue
		}
		if cur.Score >= e.Score {
			out = append(out, cur)
			changed = false
		}
	}
	if changed {
		out = append(out, e)
	}
	Rank(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
		if changed && !contains(out, e) {
			changed = false
		}
	}
	return out, changed
}

func contains(entries []Entry, e Entry) bool {
	for _, cur := range entries {
		if cur.Name == e.Name && cur.Score == e.Score && cur.Date.Equal(e.Date) {
			return true
		}
	}
	return false
}

// Cap returns at most limit entries.
func Cap(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
