package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathhelper/internal/skill"
)

// Operator is an arithmetic operation.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	// Multiplication and division are reserved for a later grade level and
	// are never drawn.
	OpMultiply
	OpDivide
)

// Symbol returns the printed symbol for op.
func (op Operator) Symbol() string {
	switch op {
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "x"
	case OpDivide:
		return "÷"
	default:
		return "+"
	}
}

// drawnOperators is how many operators, counted from OpAdd, the generator draws.
const drawnOperators = 2

const (
	arithmeticMin = 0
	arithmeticMax = 10
)

type arithmeticStrategy struct{ baseStrategy }

func (s arithmeticStrategy) Generate(t *Tracker, rng Source, tier skill.Tier) (*Question, error) {
	key, err := drawUnused(t, func() (Key, bool) {
		a := between(rng, arithmeticMin, arithmeticMax)
		b := between(rng, arithmeticMin, arithmeticMax)
		op := Operator(rng.IntN(drawnOperators))
		if op == OpSubtract && a < b {
			return Key{}, false
		}
		return Key{Family: int(op), A: a, B: b}, true
	})
	if err != nil {
		return nil, err
	}
	return NewArithmeticQuestion(Operator(key.Family), key.A, key.B, tier)
}

// NewArithmeticQuestion builds the question "a op b". Subtraction that would
// go below zero is rejected.
func NewArithmeticQuestion(op Operator, a, b int, tier skill.Tier) (*Question, error) {
	var result int
	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		if a < b {
			return nil, fmt.Errorf("subtraction %d - %d is negative", a, b)
		}
		result = a - b
	default:
		return nil, fmt.Errorf("operator %q is not supported", op.Symbol())
	}

	return &Question{
		SkillID:  skill.Arithmetic,
		Tier:     tier,
		Text:     fmt.Sprintf("What is %d %s %d?", a, op.Symbol(), b),
		Format:   FormatNumeric,
		Answer:   strconv.Itoa(result),
		Operands: []int{a, b},
		Operator: op,
		Key:      Key{Family: int(op), A: a, B: b},
	}, nil
}
