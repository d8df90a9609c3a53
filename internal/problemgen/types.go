package problemgen

import "strconv"

// Operator is one of the four arithmetic operations.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
)

// Operators lists every operator in draw order.
var Operators = []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide}

// Apply computes a op b. The second result is false for division that is
// not exact or divides by zero.
func (o Operator) Apply(a, b int) (int, bool) {
	switch o {
	case OpAdd:
		return a + b, true
	case OpSubtract:
		return a - b, true
	case OpMultiply:
		return a * b, true
	case OpDivide:
		if b == 0 || a%b != 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}

// Question is a generated arithmetic question ready for display.
type Question struct {
	// Text is the prompt shown to the player, e.g. "12 * 7".
	Text string

	// Operator and operands the question was built from.
	Operator Operator
	A        int
	B        int

	// Answer is the exact integer result.
	Answer int

	// Choices holds four distinct options in display order, one of which
	// equals Answer.
	Choices []int

	// LevelIndex is the difficulty level the question was generated for.
	LevelIndex int
}

// ChoiceLabels returns the choices formatted for display.
func (q *Question) ChoiceLabels() []string {
	out := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		out[i] = strconv.Itoa(c)
	}
	return out
}

// CorrectIndex returns the position of Answer in Choices, or -1.
func (q *Question) CorrectIndex() int {
	for i, c := range q.Choices {
		if c == q.Answer {
			return i
		}
	}
	return -1
}
