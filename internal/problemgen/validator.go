package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathhelper/internal/skill"
)

// Validator checks a generated question for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate returns nil if q passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is the chain every generated question passes through.
var DefaultValidators = []Validator{
	&StructuralValidator{},
	&MathCheckValidator{},
}

// Validate runs validators in order; the first failure stops the chain.
func Validate(q *Question, validators ...Validator) error {
	if len(validators) == 0 {
		validators = DefaultValidators
	}
	for _, v := range validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

// Generate draws a question from s and runs it through the default
// validators. The strategy marks the key used before validation, so a
// rejected question's key stays consumed and is never drawn again in the
// session.
func Generate(s Strategy, t *Tracker, rng Source, tier skill.Tier) (*Question, error) {
	q, err := s.Generate(t, rng, tier)
	if err != nil {
		return nil, err
	}
	if err := Validate(q); err != nil {
		return nil, fmt.Errorf("%s question %q: %w", s.Skill(), q.Text, err)
	}
	return q, nil
}

// StructuralValidator checks that required fields are present and that
// picture questions offer distinct panels, one of which is the answer.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	if q.Text == "" {
		return fail("question text is empty")
	}
	if q.Answer == "" {
		return fail("answer is empty")
	}

	switch q.Format {
	case FormatNumeric:
		if len(q.Choices) != 0 {
			return fail("numeric question carries %d choices", len(q.Choices))
		}
	case FormatMultipleChoice:
		if len(q.Choices) < 2 || len(q.Choices) > 3 {
			return fail("picture question needs 2 or 3 panels, got %d", len(q.Choices))
		}
		seen := make(map[string]bool, len(q.Choices))
		found := false
		for _, c := range q.Choices {
			if seen[c] {
				return fail("panel %q appears twice", c)
			}
			seen[c] = true
			if c == q.Answer {
				found = true
			}
		}
		if !found {
			return fail("answer %q is not one of the panels", q.Answer)
		}
	default:
		return fail("unknown format %q", q.Format)
	}
	return nil
}

// MathCheckValidator independently recomputes the answer from the operands
// for skills where that is possible. Other skills pass through.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	switch q.SkillID {
	case skill.Arithmetic:
		if len(q.Operands) != 2 {
			return fail("arithmetic question needs 2 operands")
		}
		a, b := q.Operands[0], q.Operands[1]
		var want int
		switch q.Operator {
		case OpAdd:
			want = a + b
		case OpSubtract:
			want = a - b
		default:
			return fail("operator %q is never asked", q.Operator.Symbol())
		}
		if want < 0 {
			return fail("%d - %d is negative", a, b)
		}
		if q.Answer != strconv.Itoa(want) {
			return fail("computed %d but question claims %q", want, q.Answer)
		}

	case skill.Estimate:
		if q.Pivot == nil || len(q.Operands) != 2 {
			return fail("estimate question needs a pivot and 2 operands")
		}
		if !ValidEstimate(*q.Pivot, q.Operands[0], q.Operands[1]) {
			return fail("%d is not strictly closer to %d than %d", q.Operands[0], *q.Pivot, q.Operands[1])
		}

	case skill.Comparison:
		rel := Relation(q.Key.Family)
		if rel < 0 || rel >= relationCount {
			return fail("unknown relation %d", q.Key.Family)
		}
		if !relations[rel].valid(q.Key.A, q.Key.B, q.Key.C) {
			return fail("(%d, %d, %d) is not a valid %q question", q.Key.A, q.Key.B, q.Key.C, rel)
		}

	case skill.Counting:
		if len(q.Operands) != 1 || q.Answer != strconv.Itoa(q.Operands[0]) {
			return fail("count %v does not match answer %q", q.Operands, q.Answer)
		}
	}
	return nil
}
