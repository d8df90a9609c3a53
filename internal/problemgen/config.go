package problemgen

// ChoiceCount is the number of options every question offers.
const ChoiceCount = 4

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxAttempts bounds how many times a question is regenerated after a
	// retryable validation failure.
	MaxAttempts int

	// DistractorDraws is the random draw budget for distractors before the
	// deterministic fill takes over.
	DistractorDraws int

	// MinSpread and MaxSpread clamp the distractor offset range.
	MinSpread int
	MaxSpread int

	// NonNegativeBelow is the first level index allowed to show negative
	// numbers.
	NonNegativeBelow int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&MathCheckValidator{},
			&SignValidator{BelowLevel: 2},
		},
		MaxAttempts:      5,
		DistractorDraws:  64,
		MinSpread:        6,
		MaxSpread:        200,
		NonNegativeBelow: 2,
	}
}
