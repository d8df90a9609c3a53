package session

import (
	"time"

	"github.com/abhisek/mathblitz/internal/difficulty"
	"github.com/abhisek/mathblitz/internal/problemgen"
)

// Phase represents the current phase of a game.
type Phase int

const (
	PhaseIdle             Phase = iota // No game running
	PhasePresenting                    // Generating and showing a question
	PhaseAwaitingResponse              // Countdown running, answers accepted
	PhaseResolving                     // Answer locked, feedback on screen
	PhaseEnding                        // Game over, result being published
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePresenting:
		return "presenting"
	case PhaseAwaitingResponse:
		return "awaiting-response"
	case PhaseResolving:
		return "resolving"
	case PhaseEnding:
		return "ending"
	}
	return "unknown"
}

// Feedback display delays before the next question or the end of the game.
const (
	CorrectFeedbackDelay = 600 * time.Millisecond
	GameOverDelay        = 900 * time.Millisecond
)

// TickInterval is how often hosts should poll the countdown.
const TickInterval = 100 * time.Millisecond

// GameState tracks the runtime state of one game.
type GameState struct {
	// SessionID is the UUID for this game.
	SessionID string

	// PlayerName is the normalized display name.
	PlayerName string

	// Score is the number of correct answers so far.
	Score int

	// LevelIndex is the current difficulty level index.
	LevelIndex int

	// Running is true from start until the game-over effect.
	Running bool

	// AnswerLocked is set once the active round has been resolved.
	AnswerLocked bool

	// Phase is the controller phase.
	Phase Phase

	// Round identifies the active question. Events carrying a different
	// round are stale.
	Round int

	// Question is the active question (nil before the first round).
	Question *problemgen.Question

	// Deadline is the captured end timestamp of the active countdown.
	Deadline time.Time

	// Budget is the time budget the active countdown started with.
	Budget time.Duration

	// QuestionStartTime is when the active question was presented.
	QuestionStartTime time.Time

	// StartTime is when the game began.
	StartTime time.Time

	// Answered counts resolved rounds, including the final one.
	Answered int

	// LastChoice is the text of the most recent selection ("" on timeout).
	LastChoice string

	// LastCorrect records whether the most recent round was answered correctly.
	LastCorrect bool

	// LastTimedOut records whether the most recent round expired.
	LastTimedOut bool
}

// NewGameState creates a fresh running state at level zero.
func NewGameState(sessionID, playerName string, now time.Time) *GameState {
	return &GameState{
		SessionID:  sessionID,
		PlayerName: playerName,
		Running:    true,
		Phase:      PhasePresenting,
		StartTime:  now,
	}
}

// Level returns the difficulty level for the current level index.
func (s *GameState) Level() difficulty.Level {
	return difficulty.At(s.LevelIndex)
}

// Remaining returns the countdown time left at now, never negative.
// It is always recomputed from Deadline.
func (s *GameState) Remaining(now time.Time) time.Duration {
	if s.Phase != PhaseAwaitingResponse {
		return 0
	}
	rem := s.Deadline.Sub(now)
	if rem < 0 {
		return 0
	}
	return rem
}

// TimeFraction returns the remaining share of the budget in [0,1].
func (s *GameState) TimeFraction(now time.Time) float64 {
	if s.Budget <= 0 {
		return 0
	}
	f := float64(s.Remaining(now)) / float64(s.Budget)
	if f > 1 {
		return 1
	}
	return f
}
