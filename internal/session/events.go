package session

import (
	"time"

	"github.com/abhisek/mathblitz/internal/difficulty"
	"github.com/abhisek/mathblitz/internal/problemgen"
)

// Event is an input to the Controller.
type Event interface{ event() }

// GameStartRequested asks for a new game for the given raw name.
type GameStartRequested struct {
	Name string
	Now  time.Time
}

// AnswerSelected carries the choice text the player picked for a round.
type AnswerSelected struct {
	Round  int
	Choice string
	Now    time.Time
}

// TimerTick is a countdown poll for a round.
type TimerTick struct {
	Round int
	Now   time.Time
}

// DisplayElapsed signals the feedback delay for a round has passed.
type DisplayElapsed struct {
	Round int
	Now   time.Time
}

func (GameStartRequested) event() {}
func (AnswerSelected) event()     {}
func (TimerTick) event()          {}
func (DisplayElapsed) event()     {}

// Effect is an output of the Controller for the host to act on.
type Effect interface{ effect() }

// StartRejected means the name was unusable and no game started.
type StartRejected struct {
	Err error
}

// QuestionPresented carries the question for a new round.
type QuestionPresented struct {
	Round    int
	Question *problemgen.Question
	Level    difficulty.Level
	Fallback bool
}

// CountdownStarted asks the host to start polling the countdown.
type CountdownStarted struct {
	Round    int
	Deadline time.Time
	Budget   time.Duration
}

// CountdownCancelled asks the host to stop polling for a round.
type CountdownCancelled struct {
	Round int
}

// FeedbackScheduled asks the host to deliver DisplayElapsed after Delay.
type FeedbackScheduled struct {
	Round    int
	Delay    time.Duration
	Choice   string
	Correct  bool
	TimedOut bool
}

// LevelUp is emitted once per level crossing.
type LevelUp struct {
	From difficulty.Level
	To   difficulty.Level
}

// GameOver carries the final result. The host submits it to the leaderboard.
type GameOver struct {
	Result Result
}

func (StartRejected) effect()      {}
func (QuestionPresented) effect()  {}
func (CountdownStarted) effect()   {}
func (CountdownCancelled) effect() {}
func (FeedbackScheduled) effect()  {}
func (LevelUp) effect()            {}
func (GameOver) effect()           {}
