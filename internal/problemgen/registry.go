package problemgen

import (
	"fmt"

	"github.com/abhisek/mathhelper/internal/skill"
)

var strategies = map[skill.ID]Strategy{
	skill.Counting:   countingStrategy{baseStrategy{skill.Counting}},
	skill.Comparison: comparisonStrategy{baseStrategy{skill.Comparison}},
	skill.Matching:   matchingStrategy{baseStrategy{skill.Matching}},
	skill.Sequences:  sequencesStrategy{baseStrategy{skill.Sequences}},
	skill.Arithmetic: arithmeticStrategy{baseStrategy{skill.Arithmetic}},
	skill.Estimate:   estimateStrategy{baseStrategy{skill.Estimate}},
	skill.Fractions:  fractionsStrategy{baseStrategy{skill.Fractions}},
	skill.Coins:      coinsStrategy{baseStrategy{skill.Coins}},
}

// ForSkill returns the question strategy for id. Final has no strategy of its
// own; it delegates to the others.
func ForSkill(id skill.ID) (Strategy, error) {
	s, ok := strategies[id]
	if !ok {
		return nil, fmt.Errorf("no question strategy for skill %q", id)
	}
	return s, nil
}
