package game

import (
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathblitz/internal/difficulty"
	"github.com/abhisek/mathblitz/internal/problemgen"
	"github.com/abhisek/mathblitz/internal/router"
	"github.com/abhisek/mathblitz/internal/screen"
	"github.com/abhisek/mathblitz/internal/screens/gameover"
	"github.com/abhisek/mathblitz/internal/session"
	"github.com/abhisek/mathblitz/internal/ui/components"
	"github.com/abhisek/mathblitz/internal/ui/layout"
)

// LevelUpBannerDuration is how long the level-up banner stays up.
const LevelUpBannerDuration = 1500 * time.Millisecond

// Config holds what a game needs beyond the controller.
type Config struct {
	PlayerName string

	// Rand drives question generation. Defaults to a time-seeded source.
	Rand      *rand.Rand
	Generator session.QuestionGenerator
	Logger    zerolog.Logger

	// Submitter receives the result on game over. Nil plays offline.
	Submitter gameover.Submitter

	// Now defaults to time.Now.
	Now func() time.Time
}

// GameScreen hosts the round controller: it turns effects into timers and
// key presses into events.
type GameScreen struct {
	cfg  Config
	ctrl *session.Controller

	question *problemgen.Question
	level    difficulty.Level
	fallback bool
	pad      components.MultiChoice
	now      time.Time

	feedback    string
	feedbackOK  bool
	levelUp     string
	levelUpSeq  int
	rejectedErr error
	over        bool
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)

// New creates a GameScreen. The game starts in Init.
func New(cfg Config) *GameScreen {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = problemgen.NewRand(uint64(time.Now().UnixNano()))
	}

	opts := []session.Option{session.WithLogger(cfg.Logger)}
	if cfg.Generator != nil {
		opts = append(opts, session.WithGenerator(cfg.Generator))
	}
	return &GameScreen{
		cfg:  cfg,
		ctrl: session.NewController(cfg.Rand, opts...),
	}
}

func (s *GameScreen) Init() tea.Cmd {
	now := s.cfg.Now()
	s.now = now
	return s.apply(s.ctrl.Handle(session.GameStartRequested{Name: s.cfg.PlayerName, Now: now}))
}

func (s *GameScreen) Title() string {
	return s.level.Name
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit game"},
	}
}

// Status reports the running level and score for the header.
func (s *GameScreen) Status() *layout.Status {
	st := s.ctrl.State()
	return &layout.Status{Level: st.Level().Number(), Score: st.Score}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		st := s.ctrl.State()
		if msg.Round != st.Round || st.Phase != session.PhaseAwaitingResponse {
			return s, nil
		}
		s.now = msg.Time
		cmd := s.apply(s.ctrl.Handle(session.TimerTick{Round: msg.Round, Now: msg.Time}))
		if s.ctrl.State().Phase == session.PhaseAwaitingResponse {
			return s, tea.Batch(cmd, tick(msg.Round))
		}
		return s, cmd

	case components.ChoiceMadeMsg:
		st := s.ctrl.State()
		if msg.Index < 0 || msg.Index >= len(s.pad.Options) {
			return s, nil
		}
		now := s.cfg.Now()
		s.now = now
		return s, s.apply(s.ctrl.Handle(session.AnswerSelected{
			Round:  st.Round,
			Choice: s.pad.Options[msg.Index],
			Now:    now,
		}))

	case feedbackDoneMsg:
		s.now = msg.Time
		return s, s.apply(s.ctrl.Handle(session.DisplayElapsed{Round: msg.Round, Now: msg.Time}))

	case levelUpDoneMsg:
		if msg.Seq == s.levelUpSeq {
			s.levelUp = ""
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.ctrl.State().Phase != session.PhaseAwaitingResponse {
			return s, nil
		}
		var cmd tea.Cmd
		s.pad, cmd = s.pad.Update(msg)
		return s, cmd
	}
	return s, nil
}

// apply performs the host side of each controller effect.
func (s *GameScreen) apply(effects []session.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case session.StartRejected:
			s.rejectedErr = e.Err

		case session.QuestionPresented:
			s.question = e.Question
			s.level = e.Level
			s.fallback = e.Fallback
			s.pad = components.NewMultiChoice(e.Question.ChoiceLabels())
			s.feedback = ""

		case session.CountdownStarted:
			cmds = append(cmds, tick(e.Round))

		case session.CountdownCancelled:
			// Pending ticks for the round are dropped in Update.

		case session.LevelUp:
			s.levelUpSeq++
			s.levelUp = "LEVEL UP! " + e.To.Name
			seq := s.levelUpSeq
			cmds = append(cmds, tea.Tick(LevelUpBannerDuration, func(time.Time) tea.Msg {
				return levelUpDoneMsg{Seq: seq}
			}))

		case session.FeedbackScheduled:
			chosen := -1
			for i, opt := range s.pad.Options {
				if opt == e.Choice && !e.TimedOut {
					chosen = i
				}
			}
			s.pad = s.pad.Resolve(s.question.CorrectIndex(), chosen)
			s.feedbackOK = e.Correct
			switch {
			case e.TimedOut:
				s.feedback = "Time's up!"
			case e.Correct:
				s.feedback = "Correct!"
			default:
				s.feedback = "Wrong!"
			}
			round := e.Round
			cmds = append(cmds, tea.Tick(e.Delay, func(t time.Time) tea.Msg {
				return feedbackDoneMsg{Round: round, Time: t}
			}))

		case session.GameOver:
			s.over = true
			next := gameover.New(e.Result, s.cfg.Submitter, s.replay, s.cfg.Logger)
			cmds = append(cmds, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} })
		}
	}
	return tea.Batch(cmds...)
}

// replay starts a fresh game for the same player.
func (s *GameScreen) replay() screen.Screen {
	cfg := s.cfg
	cfg.PlayerName = s.ctrl.State().PlayerName
	return New(cfg)
}

func tick(round int) tea.Cmd {
	return tea.Tick(session.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg{Round: round, Time: t}
	})
}
