package difficulty

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Level describes the operand range, answer time budget and promotion
// threshold of one difficulty step.
type Level struct {
	// Index is the zero-based position in the level table.
	Index int

	// Name is shown in the game header.
	Name string

	// OperandMin and OperandMax bound generated operands (inclusive).
	OperandMin int
	OperandMax int

	// TimeBudget is how long the player has to answer one question.
	TimeBudget time.Duration

	// ScoreThreshold is the highest score that still maps to this level.
	// The last level is unbounded.
	ScoreThreshold int
}

// Number returns the 1-based level number shown to players and stored on
// the leaderboard.
func (l Level) Number() int {
	return l.Index + 1
}

// Terminal reports whether no level follows this one.
func (l Level) Terminal() bool {
	return l.ScoreThreshold == math.MaxInt
}

// Span is the width of the operand range.
func (l Level) Span() int {
	return l.OperandMax - l.OperandMin
}

var levels = []Level{
	{Index: 0, Name: "Warm-up", OperandMin: 1, OperandMax: 10, TimeBudget: 10 * time.Second, ScoreThreshold: 4},
	{Index: 1, Name: "Rookie", OperandMin: 10, OperandMax: 50, TimeBudget: 13 * time.Second, ScoreThreshold: 9},
	{Index: 2, Name: "Sharp", OperandMin: 50, OperandMax: 150, TimeBudget: 15 * time.Second, ScoreThreshold: 19},
	{Index: 3, Name: "Expert", OperandMin: 150, OperandMax: 500, TimeBudget: 18 * time.Second, ScoreThreshold: 29},
	{Index: 4, Name: "Master", OperandMin: 500, OperandMax: 2000, TimeBudget: 22 * time.Second, ScoreThreshold: math.MaxInt},
}

// Levels returns a copy of the level table, ordered by index.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// Count returns the number of levels.
func Count() int {
	return len(levels)
}

// At returns the level with the given index, clamped into range.
func At(index int) Level {
	if index < 0 {
		index = 0
	}
	if index >= len(levels) {
		index = len(levels) - 1
	}
	return levels[index]
}

// LevelFor returns the index of the first level whose threshold is greater
// than or equal to score. Scores past every threshold map to the last level.
func LevelFor(score int) int {
	for _, l := range levels {
		if score <= l.ScoreThreshold {
			return l.Index
		}
	}
	return len(levels) - 1
}

// Validate checks a level table for degenerate ranges and thresholds that
// do not strictly increase.
func Validate(table []Level) error {
	if len(table) == 0 {
		return errors.New("difficulty: empty level table")
	}
	prev := -1
	for i, l := range table {
		if l.Index != i {
			return fmt.Errorf("difficulty: level %d has index %d", i, l.Index)
		}
		if l.OperandMax < l.OperandMin {
			return fmt.Errorf("difficulty: level %d: max %d < min %d", i, l.OperandMax, l.OperandMin)
		}
		if l.TimeBudget <= 0 {
			return fmt.Errorf("difficulty: level %d: non-positive time budget", i)
		}
		if l.ScoreThreshold <= prev {
			return fmt.Errorf("difficulty: level %d: threshold %d does not increase", i, l.ScoreThreshold)
		}
		prev = l.ScoreThreshold
	}
	if !table[len(table)-1].Terminal() {
		return errors.New("difficulty: last level must be unbounded")
	}
	return nil
}
