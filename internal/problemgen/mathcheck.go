package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
)

// MathCheckValidator independently recomputes the answer from the question
// text and checks it against the stored answer.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

var exprRe = regexp.MustCompile(`^(-?\d+) ([+\-*/]) (-?\d+)$`)

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	m := exprRe.FindStringSubmatch(q.Text)
	if m == nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("unparseable question text %q", q.Text),
			Retryable: true,
		}
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[3])
	computed, ok := Operator(m[2]).Apply(a, b)
	if !ok {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%q has no exact integer result", q.Text),
			Retryable: true,
		}
	}
	if computed != q.Answer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %d but question claims %d", computed, q.Answer),
			Retryable: true,
		}
	}
	return nil
}
