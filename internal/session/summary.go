package session

import (
	"time"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

// Result holds the data displayed on the game-over screen and submitted to
// the leaderboard.
type Result struct {
	SessionID  string
	PlayerName string
	Score      int
	LevelIndex int
	Answered   int
	TimedOut   bool
	StartedAt  time.Time
	EndedAt    time.Time
}

// Level returns the 1-based final level.
func (r Result) Level() int {
	return r.LevelIndex + 1
}

// Duration is the wall time the game lasted.
func (r Result) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Submission converts the result into a leaderboard submission.
func (r Result) Submission() leaderboard.Submission {
	return leaderboard.Submission{
		Name:      r.PlayerName,
		Score:     r.Score,
		Level:     r.Level(),
		SessionID: r.SessionID,
	}
}

// BuildResult creates a Result from the final game state.
func BuildResult(state *GameState, now time.Time) Result {
	return Result{
		SessionID:  state.SessionID,
		PlayerName: state.PlayerName,
		Score:      state.Score,
		LevelIndex: state.LevelIndex,
		Answered:   state.Answered,
		TimedOut:   state.LastTimedOut,
		StartedAt:  state.StartTime,
		EndedAt:    now,
	}
}
