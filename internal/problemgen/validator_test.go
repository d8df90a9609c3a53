package problemgen

import "testing"

func validQuestion() *Question {
	return &Question{
		Text:     "12 * 7",
		Operator: OpMultiply,
		A:        12,
		B:        7,
		Answer:   84,
		Choices:  []int{80, 84, 91, 77},
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Validator: "test-validator",
		Message:   "something went wrong",
		Retryable: true,
	}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	names := []string{"structural", "math-check", "sign"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestStructural(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(q *Question)
	}{
		{"empty text", func(q *Question) { q.Text = "" }},
		{"three choices", func(q *Question) { q.Choices = q.Choices[:3] }},
		{"duplicate", func(q *Question) { q.Choices[0] = 84 }},
		{"answer missing", func(q *Question) { q.Choices[1] = 85 }},
	}
	for _, tc := range tests {
		q := validQuestion()
		tc.mutate(q)
		err := v.Validate(q)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if err.Validator != "structural" {
			t.Errorf("%s: validator %q", tc.name, err.Validator)
		}
	}
}

func TestMathCheck(t *testing.T) {
	v := &MathCheckValidator{}

	tests := []struct {
		text   string
		answer int
		ok     bool
	}{
		{"12 * 7", 84, true},
		{"12 * 7", 85, false},
		{"9 - 12", -3, true},
		{"144 / 12", 12, true},
		{"145 / 12", 12, false},
		{"7 / 0", 0, false},
		{"what is 2 + 2", 4, false},
	}
	for _, tc := range tests {
		q := validQuestion()
		q.Text = tc.text
		q.Answer = tc.answer
		err := v.Validate(q)
		if (err == nil) != tc.ok {
			t.Errorf("%q = %d: err %v, want ok=%v", tc.text, tc.answer, err, tc.ok)
		}
	}
}

func TestSign(t *testing.T) {
	v := &SignValidator{BelowLevel: 2}

	q := validQuestion()
	q.Choices = []int{-1, 84, 91, 77}
	if err := v.Validate(q); err == nil {
		t.Error("expected negative choice rejected at level 0")
	}

	q.LevelIndex = 2
	if err := v.Validate(q); err != nil {
		t.Errorf("negatives allowed at level 2, got %v", err)
	}

	q = validQuestion()
	q.Answer = -4
	if err := v.Validate(q); err == nil {
		t.Error("expected negative answer rejected at level 0")
	}
}
