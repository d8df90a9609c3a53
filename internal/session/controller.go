package session

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathblitz/internal/difficulty"
	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/problemgen"
)

// QuestionGenerator produces a question for a level.
type QuestionGenerator interface {
	Generate(level difficulty.Level, rng *rand.Rand) (*problemgen.Question, error)
}

// Controller is the round state machine. All inputs arrive through Handle
// and all side effects leave as returned Effects, so the controller itself
// never starts timers or performs IO. It is not safe for concurrent use.
type Controller struct {
	gen    QuestionGenerator
	rng    *rand.Rand
	logger zerolog.Logger
	newID  func() string

	state *GameState
	round int
}

// Option configures a Controller.
type Option func(*Controller)

// WithGenerator replaces the default question generator.
func WithGenerator(g QuestionGenerator) Option {
	return func(c *Controller) { c.gen = g }
}

// WithLogger sets the logger used for generation faults.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithIDFunc replaces the session ID source.
func WithIDFunc(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

// NewController creates an idle controller drawing randomness from rng.
func NewController(rng *rand.Rand, opts ...Option) *Controller {
	c := &Controller{
		gen:    problemgen.New(problemgen.DefaultConfig()),
		rng:    rng,
		logger: zerolog.Nop(),
		newID:  uuid.NewString,
		state:  &GameState{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current game state.
func (c *Controller) State() GameState {
	return *c.state
}

// Remaining returns the active countdown's time left at now.
func (c *Controller) Remaining(now time.Time) time.Duration {
	return c.state.Remaining(now)
}

// TimeFraction returns the active countdown's remaining share at now.
func (c *Controller) TimeFraction(now time.Time) float64 {
	return c.state.TimeFraction(now)
}

// Handle applies one event and returns the effects it produced. Events that
// do not apply to the current phase or round are ignored.
func (c *Controller) Handle(ev Event) []Effect {
	switch ev := ev.(type) {
	case GameStartRequested:
		return c.start(ev)
	case AnswerSelected:
		return c.answer(ev)
	case TimerTick:
		return c.tick(ev)
	case DisplayElapsed:
		return c.displayElapsed(ev)
	}
	return nil
}

func (c *Controller) start(ev GameStartRequested) []Effect {
	if c.state.Running {
		return nil
	}
	name, err := leaderboard.NormalizeName(ev.Name)
	if err != nil {
		return []Effect{StartRejected{Err: err}}
	}

	c.state = NewGameState(c.newID(), name, ev.Now)
	c.logger.Debug().
		Str("session_id", c.state.SessionID).
		Str("player", name).
		Msg("game started")
	return c.present(ev.Now)
}

func (c *Controller) present(now time.Time) []Effect {
	c.round++
	level := c.state.Level()

	c.state.Phase = PhasePresenting
	q, err := c.gen.Generate(level, c.rng)
	fallback := false
	if err != nil {
		c.logger.Warn().Err(err).
			Int("level", level.Index).
			Msg("question generation failed, using fallback")
		q = problemgen.Fallback()
		q.LevelIndex = level.Index
		fallback = true
	}

	c.state.Round = c.round
	c.state.Question = q
	c.state.AnswerLocked = false
	c.state.QuestionStartTime = now
	c.state.Budget = level.TimeBudget
	c.state.Deadline = now.Add(level.TimeBudget)
	c.state.Phase = PhaseAwaitingResponse

	return []Effect{
		QuestionPresented{Round: c.round, Question: q, Level: level, Fallback: fallback},
		CountdownStarted{Round: c.round, Deadline: c.state.Deadline, Budget: level.TimeBudget},
	}
}

func (c *Controller) accepting(round int) bool {
	return c.state.Running &&
		c.state.Phase == PhaseAwaitingResponse &&
		!c.state.AnswerLocked &&
		round == c.state.Round
}

func (c *Controller) answer(ev AnswerSelected) []Effect {
	if !c.accepting(ev.Round) {
		return nil
	}
	// The captured deadline is authoritative even if the tick is late.
	if c.state.Remaining(ev.Now) <= 0 {
		return c.resolve(false, true, "", ev.Now)
	}
	correct := problemgen.CheckAnswer(ev.Choice, c.state.Question)
	return c.resolve(correct, false, ev.Choice, ev.Now)
}

func (c *Controller) tick(ev TimerTick) []Effect {
	if !c.accepting(ev.Round) {
		return nil
	}
	if c.state.Remaining(ev.Now) > 0 {
		return nil
	}
	return c.resolve(false, true, "", ev.Now)
}

func (c *Controller) resolve(correct, timedOut bool, choice string, now time.Time) []Effect {
	c.state.AnswerLocked = true
	c.state.Phase = PhaseResolving
	c.state.Answered++
	c.state.LastChoice = choice
	c.state.LastCorrect = correct
	c.state.LastTimedOut = timedOut

	effects := []Effect{CountdownCancelled{Round: c.state.Round}}

	p := Advance(c.state, correct)
	if p.LevelUp() {
		effects = append(effects, LevelUp{From: difficulty.At(p.From), To: difficulty.At(p.To)})
	}

	delay := CorrectFeedbackDelay
	if p.GameOver {
		delay = GameOverDelay
	}
	return append(effects, FeedbackScheduled{
		Round:    c.state.Round,
		Delay:    delay,
		Choice:   choice,
		Correct:  correct,
		TimedOut: timedOut,
	})
}

func (c *Controller) displayElapsed(ev DisplayElapsed) []Effect {
	if !c.state.Running || c.state.Phase != PhaseResolving || ev.Round != c.state.Round {
		return nil
	}
	if c.state.LastCorrect {
		return c.present(ev.Now)
	}
	return c.end(ev.Now)
}

func (c *Controller) end(now time.Time) []Effect {
	c.state.Phase = PhaseEnding
	c.state.Running = false
	result := BuildResult(c.state, now)

	c.logger.Info().
		Str("session_id", result.SessionID).
		Str("player", result.PlayerName).
		Int("score", result.Score).
		Int("level", result.Level()).
		Bool("timed_out", result.TimedOut).
		Msg("game over")

	c.state.Phase = PhaseIdle
	return []Effect{GameOver{Result: result}}
}
