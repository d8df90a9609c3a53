package problemgen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/mathblitz/internal/difficulty"
)

// ErrDegenerateLevel is returned for a level whose operand range is empty.
var ErrDegenerateLevel = errors.New("problemgen: degenerate level")

// Generator produces arithmetic questions for a difficulty level.
// It holds no mutable state; randomness comes from the caller's source.
type Generator struct {
	cfg Config
}

// New creates a Generator with the given configuration.
func New(cfg Config) *Generator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.MinSpread < 1 {
		cfg.MinSpread = 1
	}
	if cfg.MaxSpread < cfg.MinSpread {
		cfg.MaxSpread = cfg.MinSpread
	}
	return &Generator{cfg: cfg}
}

var defaultGenerator = New(DefaultConfig())

// Generate produces a question for level using the default configuration.
func Generate(level difficulty.Level, rng *rand.Rand) (*Question, error) {
	return defaultGenerator.Generate(level, rng)
}

// NewRand returns a PCG-backed source seeded from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate produces a validated question for level. All configured
// validators are run before returning; retryable failures regenerate.
func (g *Generator) Generate(level difficulty.Level, rng *rand.Rand) (*Question, error) {
	if level.OperandMax < level.OperandMin {
		return nil, fmt.Errorf("%w: level %d range [%d,%d]",
			ErrDegenerateLevel, level.Index, level.OperandMin, level.OperandMax)
	}

	var lastErr *ValidationError
	for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
		q := g.build(level, rng)
		verr := g.validate(q)
		if verr == nil {
			return q, nil
		}
		lastErr = verr
		if !verr.Retryable {
			break
		}
	}
	return nil, fmt.Errorf("generating level %d question: %w", level.Index, lastErr)
}

func (g *Generator) validate(q *Question) *ValidationError {
	for _, v := range g.cfg.Validators {
		if err := v.Validate(q); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) build(level difficulty.Level, rng *rand.Rand) *Question {
	op := Operators[rng.IntN(len(Operators))]
	a, b, op := g.operands(op, level, rng)
	answer, _ := op.Apply(a, b)

	return &Question{
		Text:       fmt.Sprintf("%d %s %d", a, op, b),
		Operator:   op,
		A:          a,
		B:          b,
		Answer:     answer,
		Choices:    g.choices(answer, level, rng),
		LevelIndex: level.Index,
	}
}

// operands draws operands for op. Division may fall back to addition when
// the range holds no positive dividend.
func (g *Generator) operands(op Operator, level difficulty.Level, rng *rand.Rand) (int, int, Operator) {
	lo, hi := level.OperandMin, level.OperandMax

	switch op {
	case OpSubtract:
		a, b := between(rng, lo, hi), between(rng, lo, hi)
		if level.Index < g.cfg.NonNegativeBelow && a < b {
			a, b = b, a
		}
		return a, b, op
	case OpDivide:
		if a, b, ok := divisionOperands(lo, hi, rng); ok {
			return a, b, op
		}
		return between(rng, lo, hi), between(rng, lo, hi), OpAdd
	default:
		return between(rng, lo, hi), between(rng, lo, hi), op
	}
}

// divisionOperands picks a divisor in [2, isqrt(hi)] that admits a whole
// quotient with the dividend inside [lo, hi]. With no such divisor the
// divisor is 1.
func divisionOperands(lo, hi int, rng *rand.Rand) (int, int, bool) {
	var divisors []int
	for d := 2; d*d <= hi; d++ {
		if qlo, qhi := quotientRange(lo, hi, d); qlo <= qhi {
			divisors = append(divisors, d)
		}
	}

	d := 1
	if len(divisors) > 0 {
		d = divisors[rng.IntN(len(divisors))]
	}
	qlo, qhi := quotientRange(lo, hi, d)
	if qlo > qhi {
		return 0, 0, false
	}
	q := between(rng, qlo, qhi)
	return d * q, d, true
}

func quotientRange(lo, hi, d int) (int, int) {
	qlo := 1
	if lo > d {
		qlo = (lo + d - 1) / d
	}
	if hi < d {
		return qlo, 0
	}
	return qlo, hi / d
}

// choices builds ChoiceCount distinct options around answer and shuffles
// them.
func (g *Generator) choices(answer int, level difficulty.Level, rng *rand.Rand) []int {
	spread := clamp(level.Span()/6, g.cfg.MinSpread, g.cfg.MaxSpread)
	nonNegative := level.Index < g.cfg.NonNegativeBelow

	out := make([]int, 0, ChoiceCount)
	seen := make(map[int]bool, ChoiceCount)
	add := func(w int) {
		if nonNegative && w < 0 {
			w = -w
		}
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}

	add(answer)
	for draws := 0; len(out) < ChoiceCount && draws < g.cfg.DistractorDraws; draws++ {
		off := rng.IntN(2*spread+1) - spread
		if off == 0 {
			continue
		}
		add(answer + off)
	}
	for k := 1; len(out) < ChoiceCount; k++ {
		add(answer + k)
		if len(out) < ChoiceCount {
			add(answer - k)
		}
	}

	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Fallback returns the fixed question used when generation fails.
func Fallback() *Question {
	return &Question{
		Text:     "1 + 1",
		Operator: OpAdd,
		A:        1,
		B:        1,
		Answer:   2,
		Choices:  []int{1, 2, 3, 4},
	}
}

func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
