package problemgen

import (
	"math"
	"strconv"
	"strings"
)

// CheckAnswer compares the selected choice text against the correct answer.
// Returns true if the answer is correct.
//
// Normalization rules:
// - Whitespace is trimmed
// - The text is read as a number, so "12", "012" and "12.0" are equal
// - Empty or non-numeric input is never correct
func CheckAnswer(selected string, question *Question) bool {
	if question == nil {
		return false
	}
	n, ok := normalizeAnswer(selected)
	if !ok {
		return false
	}
	return n == float64(question.Answer)
}

// normalizeAnswer parses an answer string into a finite number.
func normalizeAnswer(answer string) (float64, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(answer, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
