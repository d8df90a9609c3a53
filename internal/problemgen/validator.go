package problemgen

import "fmt"

// Validator checks a generated question for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "math-check", "sign".
	Name() string

	// Validate checks the question and returns nil if it passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// SignValidator rejects negative answers or choices on levels that only
// deal in non-negative numbers.
type SignValidator struct {
	// BelowLevel is the first level index where negatives are allowed.
	BelowLevel int
}

func (v *SignValidator) Name() string { return "sign" }

func (v *SignValidator) Validate(q *Question) *ValidationError {
	if q.LevelIndex >= v.BelowLevel {
		return nil
	}
	if q.Answer < 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("negative answer %d at level %d", q.Answer, q.LevelIndex),
			Retryable: true,
		}
	}
	for _, c := range q.Choices {
		if c < 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("negative choice %d at level %d", c, q.LevelIndex),
				Retryable: true,
			}
		}
	}
	return nil
}
