package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathhelper/internal/skill"
)

// Relation is the comparison a Comparison question asks about.
type Relation int

const (
	RelMore Relation = iota
	RelGreaterThan
	RelMost
	RelSame
	RelFewer
	RelLessThan
	RelLeast
	RelNone

	relationCount
)

const (
	comparisonMin = 0
	comparisonMax = 10
)

// relationRule holds everything that differs between relations.
type relationRule struct {
	name string

	// valid reports whether the (pivot, correct, wrong) triple is a sound
	// question for this relation.
	valid func(pivot, correct, wrong int) bool

	// prompt renders the question text.
	prompt func(pivot int) string

	// threeWay relations show the pivot as a third panel.
	threeWay bool

	// capacity is the keyspace size for relations small enough to run out
	// within a session. Zero means not tracked.
	capacity int
}

var relations = [relationCount]relationRule{
	RelMore: {
		name:   "more",
		valid:  func(p, c, w int) bool { return c > p && w <= p },
		prompt: func(p int) string { return fmt.Sprintf("Which group has more than %d?", p) },
	},
	RelGreaterThan: {
		name:   "greater than",
		valid:  func(p, c, w int) bool { return c > p && w <= p },
		prompt: func(p int) string { return fmt.Sprintf("Which number is greater than %d?", p) },
	},
	RelMost: {
		name:     "most",
		valid:    func(p, c, w int) bool { return c > p && c > w && p != w },
		prompt:   func(int) string { return "Which group has the most?" },
		threeWay: true,
	},
	RelSame: {
		name:   "same",
		valid:  func(p, c, w int) bool { return c == p && w != p },
		prompt: func(p int) string { return fmt.Sprintf("Which group has the same number as %d?", p) },
	},
	RelFewer: {
		name:   "fewer",
		valid:  func(p, c, w int) bool { return c < p && w >= p },
		prompt: func(p int) string { return fmt.Sprintf("Which group has fewer than %d?", p) },
	},
	RelLessThan: {
		name:   "less than",
		valid:  func(p, c, w int) bool { return c < p && w >= p },
		prompt: func(p int) string { return fmt.Sprintf("Which number is less than %d?", p) },
	},
	RelLeast: {
		name:     "least",
		valid:    func(p, c, w int) bool { return c < p && c < w && p != w },
		prompt:   func(int) string { return "Which group has the least?" },
		threeWay: true,
	},
	RelNone: {
		name:     "none",
		valid:    func(p, c, w int) bool { return p == 0 && c == 0 && w > 0 },
		prompt:   func(int) string { return "Which group has none?" },
		capacity: comparisonMax - comparisonMin,
	},
}

// String returns the relation's name.
func (r Relation) String() string {
	if r < 0 || r >= relationCount {
		return fmt.Sprintf("relation(%d)", int(r))
	}
	return relations[r].name
}

type comparisonStrategy struct{ baseStrategy }

func (s comparisonStrategy) Generate(t *Tracker, rng Source, tier skill.Tier) (*Question, error) {
	available := make([]Relation, 0, relationCount)
	for r := range relationCount {
		rule := relations[r]
		if rule.capacity > 0 && exhausted(t, int(r), rule.capacity) {
			continue
		}
		available = append(available, r)
	}

	for len(available) > 0 {
		i := rng.IntN(len(available))
		rel := available[i]

		key, err := drawUnused(t, func() (Key, bool) {
			p, c, w := drawComparison(rng, rel)
			if !relations[rel].valid(p, c, w) {
				return Key{}, false
			}
			return comparisonKey(rel, p, c, w), true
		})
		if err == nil {
			return buildComparison(rel, key.A, key.B, key.C, rng, tier), nil
		}
		available = append(available[:i], available[i+1:]...)
	}
	return nil, ErrKeyspaceExhausted
}

// drawComparison draws a candidate triple for rel.
func drawComparison(rng Source, rel Relation) (pivot, correct, wrong int) {
	if rel == RelNone {
		return 0, 0, between(rng, comparisonMin+1, comparisonMax)
	}
	return between(rng, comparisonMin, comparisonMax),
		between(rng, comparisonMin, comparisonMax),
		between(rng, comparisonMin, comparisonMax)
}

func comparisonKey(rel Relation, pivot, correct, wrong int) Key {
	return Key{Family: int(rel), A: pivot, B: correct, C: wrong}
}

// NewComparisonQuestion builds a Comparison question for an explicit triple.
// It fails if the triple does not satisfy rel.
func NewComparisonQuestion(rel Relation, pivot, correct, wrong int, rng Source, tier skill.Tier) (*Question, error) {
	if rel < 0 || rel >= relationCount {
		return nil, fmt.Errorf("unknown relation %d", int(rel))
	}
	if !relations[rel].valid(pivot, correct, wrong) {
		return nil, fmt.Errorf("%d and %d are not a valid %q question around %d", correct, wrong, rel, pivot)
	}
	return buildComparison(rel, pivot, correct, wrong, rng, tier), nil
}

func buildComparison(rel Relation, pivot, correct, wrong int, rng Source, tier skill.Tier) *Question {
	rule := relations[rel]
	panels := []string{strconv.Itoa(correct), strconv.Itoa(wrong)}
	if rule.threeWay {
		panels = append(panels, strconv.Itoa(pivot))
	}

	p := pivot
	return &Question{
		SkillID:  skill.Comparison,
		Tier:     tier,
		Text:     rule.prompt(pivot),
		Format:   FormatMultipleChoice,
		Choices:  shuffled(rng, panels...),
		Answer:   strconv.Itoa(correct),
		Operands: []int{correct, wrong},
		Pivot:    &p,
		Key:      comparisonKey(rel, pivot, correct, wrong),
	}
}
