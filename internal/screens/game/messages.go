package game

import "time"

// tickMsg polls the countdown for a round.
type tickMsg struct {
	Round int
	Time  time.Time
}

// feedbackDoneMsg is sent when the feedback display for a round ends.
type feedbackDoneMsg struct {
	Round int
	Time  time.Time
}

// levelUpDoneMsg hides the level-up banner it was scheduled for.
type levelUpDoneMsg struct {
	Seq int
}
