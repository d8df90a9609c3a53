package problemgen

import "fmt"

// StructuralValidator checks that the question has text and exactly
// ChoiceCount distinct choices, one of which is the answer.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
			Retryable: true,
		}
	}
	if len(q.Choices) != ChoiceCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d choices, got %d", ChoiceCount, len(q.Choices)),
			Retryable: true,
		}
	}
	seen := make(map[int]bool, len(q.Choices))
	for _, c := range q.Choices {
		if seen[c] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate choice %d", c),
				Retryable: true,
			}
		}
		seen[c] = true
	}
	if !seen[q.Answer] {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %d not among choices", q.Answer),
			Retryable: true,
		}
	}
	return nil
}
