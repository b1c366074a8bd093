package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathhelper/internal/skill"
)

const (
	estimateMin = 0
	estimateMax = 20
)

type estimateStrategy struct{ baseStrategy }

func (s estimateStrategy) Generate(t *Tracker, rng Source, tier skill.Tier) (*Question, error) {
	key, err := drawUnused(t, func() (Key, bool) {
		p := between(rng, estimateMin, estimateMax)
		c := between(rng, estimateMin, estimateMax)
		w := between(rng, estimateMin, estimateMax)
		if !ValidEstimate(p, c, w) {
			return Key{}, false
		}
		return Key{A: p, B: c, C: w}, true
	})
	if err != nil {
		return nil, err
	}
	return buildEstimate(key.A, key.B, key.C, rng, tier), nil
}

// ValidEstimate reports whether correct is strictly closer to pivot than
// wrong. Equal distances are ambiguous and never asked.
func ValidEstimate(pivot, correct, wrong int) bool {
	return absInt(correct-pivot) < absInt(wrong-pivot)
}

// NewEstimateQuestion builds an Estimate question for an explicit triple.
func NewEstimateQuestion(pivot, correct, wrong int, rng Source, tier skill.Tier) (*Question, error) {
	if !ValidEstimate(pivot, correct, wrong) {
		return nil, fmt.Errorf("%d is not strictly closer to %d than %d", correct, pivot, wrong)
	}
	return buildEstimate(pivot, correct, wrong, rng, tier), nil
}

func buildEstimate(pivot, correct, wrong int, rng Source, tier skill.Tier) *Question {
	p := pivot
	return &Question{
		SkillID:  skill.Estimate,
		Tier:     tier,
		Text:     fmt.Sprintf("Which number is closest to %d?", pivot),
		Format:   FormatMultipleChoice,
		Choices:  shuffled(rng, strconv.Itoa(correct), strconv.Itoa(wrong)),
		Answer:   strconv.Itoa(correct),
		Operands: []int{correct, wrong},
		Pivot:    &p,
		Key:      Key{A: pivot, B: correct, C: wrong},
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
