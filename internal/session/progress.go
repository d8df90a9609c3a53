package session

import "github.com/abhisek/mathblitz/internal/difficulty"

// Progress describes what one resolved round did to the game.
type Progress struct {
	Correct  bool
	Score    int
	From     int
	To       int
	GameOver bool
}

// LevelUp reports whether the round crossed into a higher level.
func (p Progress) LevelUp() bool {
	return p.To > p.From
}

// Advance applies the outcome of one round. A correct answer adds a point
// and recomputes the level; anything else ends the game without touching
// score or level.
func Advance(state *GameState, correct bool) Progress {
	p := Progress{
		Correct: correct,
		From:    state.LevelIndex,
		To:      state.LevelIndex,
	}
	if !correct {
		p.Score = state.Score
		p.GameOver = true
		return p
	}

	state.Score++
	state.LevelIndex = difficulty.LevelFor(state.Score)
	p.Score = state.Score
	p.To = state.LevelIndex
	return p
}
