package problemgen

import (
	"errors"
	"testing"

	"github.com/abhisek/mathhelper/internal/skill"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Validator: "test-validator",
		Message:   "something went wrong",
	}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultValidators_Chain(t *testing.T) {
	names := []string{"structural", "math-check"}
	if len(DefaultValidators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(DefaultValidators))
	}
	for i, v := range DefaultValidators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func validArithmetic() *Question {
	q, _ := NewArithmeticQuestion(OpAdd, 3, 4, skill.TierEasy)
	return q
}

func TestStructural_ValidQuestion(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validArithmetic()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
	}{
		{"empty text", func(q *Question) { q.Text = "" }},
		{"empty answer", func(q *Question) { q.Answer = "" }},
		{"numeric with choices", func(q *Question) { q.Choices = []string{"7", "8"} }},
		{"unknown format", func(q *Question) { q.Format = "essay" }},
		{"one panel", func(q *Question) {
			q.Format = FormatMultipleChoice
			q.Choices = []string{"7"}
		}},
		{"duplicate panels", func(q *Question) {
			q.Format = FormatMultipleChoice
			q.Choices = []string{"7", "7"}
		}},
		{"answer not a panel", func(q *Question) {
			q.Format = FormatMultipleChoice
			q.Choices = []string{"5", "6"}
		}},
	}

	v := &StructuralValidator{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validArithmetic()
			tc.mutate(q)
			err := v.Validate(q)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Validator != "structural" {
				t.Errorf("expected validator %q, got %q", "structural", err.Validator)
			}
		})
	}
}

func TestMathCheck_Arithmetic(t *testing.T) {
	v := &MathCheckValidator{}

	q := validArithmetic()
	if err := v.Validate(q); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	q.Answer = "8"
	if err := v.Validate(q); err == nil {
		t.Error("expected error for wrong answer")
	}

	q = validArithmetic()
	q.Operator = OpSubtract
	q.Operands = []int{2, 5}
	q.Answer = "-3"
	if err := v.Validate(q); err == nil {
		t.Error("expected error for negative subtraction")
	}

	q = validArithmetic()
	q.Operator = OpMultiply
	if err := v.Validate(q); err == nil {
		t.Error("expected error for reserved operator")
	}
}

func TestMathCheck_EstimateTie(t *testing.T) {
	q, err := NewEstimateQuestion(5, 4, 7, NewSource(1), skill.TierEasy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.Operands = []int{3, 7}
	if err := (&MathCheckValidator{}).Validate(q); err == nil {
		t.Error("expected error for equally distant operands")
	}
}

func TestMathCheck_PassesOtherSkills(t *testing.T) {
	q := &Question{SkillID: skill.Matching, Text: "Which picture is the star?", Answer: "star"}
	if err := (&MathCheckValidator{}).Validate(q); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGenerate_ValidatesEverySkill(t *testing.T) {
	rng := NewSource(42)
	for _, sk := range skill.TestableSkills() {
		s, _ := ForSkill(sk.ID)
		tr := NewTracker()
		for i := range skill.Budget(sk.ID, skill.TierNormal) {
			if _, err := Generate(s, tr, rng, skill.TierNormal); err != nil {
				t.Fatalf("%s question %d: %v", sk.ID, i+1, err)
			}
		}
	}
}

func TestGenerate_PassesExhaustionThrough(t *testing.T) {
	s, _ := ForSkill(skill.Counting)
	tr := NewTracker()
	rng := NewSource(1)
	for range 12 {
		if _, err := Generate(s, tr, rng, skill.TierEasy); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := Generate(s, tr, rng, skill.TierEasy); !errors.Is(err, ErrKeyspaceExhausted) {
		t.Errorf("err = %v, want ErrKeyspaceExhausted", err)
	}
}

// brokenStrategy issues one question with no answer.
type brokenStrategy struct{ baseStrategy }

func (brokenStrategy) Generate(t *Tracker, _ Source, tier skill.Tier) (*Question, error) {
	k := Key{A: 1}
	t.MarkUsed(k)
	return &Question{SkillID: skill.Counting, Tier: tier, Text: "How many?", Format: FormatNumeric, Key: k}, nil
}

func TestGenerate_RejectedKeyStaysUsed(t *testing.T) {
	tr := NewTracker()
	_, err := Generate(brokenStrategy{baseStrategy{id: skill.Counting}}, tr, NewSource(1), skill.TierEasy)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if !tr.IsUsed(Key{A: 1}) || tr.Len() != 1 {
		t.Errorf("rejected key should stay consumed: IsUsed = %v, Len = %d", tr.IsUsed(Key{A: 1}), tr.Len())
	}
}
