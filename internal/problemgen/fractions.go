package problemgen

import (
	"github.com/abhisek/mathhelper/internal/skill"
)

// Fraction pool families.
const (
	familyHalf = iota
	familyWhole
)

// HalfItems and WholeItems are the Fractions picture pools.
var (
	HalfItems = []string{
		"half an apple", "half a pizza", "half a circle", "half a square",
		"half a sandwich", "half an orange", "half a cookie", "half a pie",
		"half a melon", "half a chocolate bar",
	}
	WholeItems = []string{
		"a whole apple", "a whole pizza", "a whole circle", "a whole square",
		"a whole sandwich", "a whole orange", "a whole cookie", "a whole pie",
		"a whole melon", "a whole chocolate bar",
	}
)

const (
	answerHalf  = "half"
	answerWhole = "whole"
)

type fractionsStrategy struct{ baseStrategy }

// Generate samples without replacement: it picks a pool at random and then a
// random item among that pool's remaining items. When the chosen pool is
// empty the other pool is used.
func (s fractionsStrategy) Generate(t *Tracker, rng Source, tier skill.Tier) (*Question, error) {
	first := rng.IntN(2)
	for _, family := range []int{first, 1 - first} {
		remaining := remainingItems(t, family)
		if len(remaining) == 0 {
			continue
		}
		idx := remaining[rng.IntN(len(remaining))]
		key := Key{Family: family, A: idx}
		t.MarkUsed(key)

		picture, answer := HalfItems[idx], answerHalf
		if family == familyWhole {
			picture, answer = WholeItems[idx], answerWhole
		}
		return &Question{
			SkillID:  skill.Fractions,
			Tier:     tier,
			Text:     "Does this picture show a half or a whole?",
			Format:   FormatMultipleChoice,
			Choices:  shuffled(rng, answerHalf, answerWhole),
			Answer:   answer,
			Picture:  picture,
			Operands: []int{idx},
			Key:      key,
		}, nil
	}
	return nil, ErrKeyspaceExhausted
}

// remainingItems lists the pool indices of family not yet used in t.
func remainingItems(t *Tracker, family int) []int {
	pool := HalfItems
	if family == familyWhole {
		pool = WholeItems
	}
	var out []int
	for i := range pool {
		if !t.IsUsed(Key{Family: family, A: i}) {
			out = append(out, i)
		}
	}
	return out
}
