package problemgen

import (
	"fmt"

	"github.com/abhisek/mathhelper/internal/skill"
)

// Shape is one entry of the Matching enumeration.
type Shape struct {
	Name string
	Look string // how the picture is described on its panel
}

// Shapes is the picture enumeration used by Matching questions.
var Shapes = []Shape{
	{Name: "circle", Look: "round, no corners"},
	{Name: "square", Look: "4 equal sides, 4 square corners"},
	{Name: "triangle", Look: "3 sides, 3 corners"},
	{Name: "rectangle", Look: "2 long sides, 2 short sides"},
	{Name: "oval", Look: "round but stretched like an egg"},
	{Name: "star", Look: "5 pointy tips"},
	{Name: "heart", Look: "2 bumps on top, a point at the bottom"},
	{Name: "diamond", Look: "4 equal sides, standing on a corner"},
	{Name: "pentagon", Look: "5 sides, 5 corners"},
	{Name: "hexagon", Look: "6 sides, 6 corners"},
}

// Pattern is one entry of the Sequences enumeration.
type Pattern struct {
	Shown string // the visible terms
	Next  string // the term that comes next
}

// Patterns is the enumeration used by Sequences questions. Two patterns share
// the answer "6"; they are never offered against each other.
var Patterns = []Pattern{
	{Shown: "1, 2, 3, 4", Next: "5"},
	{Shown: "2, 4, 6, 8", Next: "10"},
	{Shown: "5, 10, 15, 20", Next: "25"},
	{Shown: "10, 9, 8, 7", Next: "6"},
	{Shown: "1, 3, 5, 7", Next: "9"},
	{Shown: "3, 6, 9, 12", Next: "15"},
	{Shown: "10, 20, 30, 40", Next: "50"},
	{Shown: "20, 18, 16, 14", Next: "12"},
	{Shown: "2, 3, 4, 5", Next: "6"},
	{Shown: "0, 4, 8, 12", Next: "16"},
	{Shown: "9, 7, 5, 3", Next: "1"},
}

// drawPair draws two distinct indices into an enumeration of size n that
// accept() admits and t has not seen.
func drawPair(t *Tracker, rng Source, n int, accept func(correct, wrong int) bool) (Key, error) {
	return drawUnused(t, func() (Key, bool) {
		c := rng.IntN(n)
		w := rng.IntN(n)
		if c == w || !accept(c, w) {
			return Key{}, false
		}
		return Key{A: c, B: w}, true
	})
}

type matchingStrategy struct{ baseStrategy }

func (s matchingStrategy) Generate(t *Tracker, rng Source, tier skill.Tier) (*Question, error) {
	key, err := drawPair(t, rng, len(Shapes), func(int, int) bool { return true })
	if err != nil {
		return nil, err
	}
	correct, wrong := Shapes[key.A], Shapes[key.B]
	return &Question{
		SkillID:  skill.Matching,
		Tier:     tier,
		Text:     fmt.Sprintf("Which picture is the %s?", correct.Name),
		Format:   FormatMultipleChoice,
		Choices:  shuffled(rng, correct.Look, wrong.Look),
		Answer:   correct.Look,
		Operands: []int{key.A, key.B},
		Key:      key,
	}, nil
}

type sequencesStrategy struct{ baseStrategy }

func (s sequencesStrategy) Generate(t *Tracker, rng Source, tier skill.Tier) (*Question, error) {
	key, err := drawPair(t, rng, len(Patterns), func(c, w int) bool {
		return Patterns[c].Next != Patterns[w].Next
	})
	if err != nil {
		return nil, err
	}
	pattern := Patterns[key.A]
	return &Question{
		SkillID:  skill.Sequences,
		Tier:     tier,
		Text:     fmt.Sprintf("What comes next? %s, __", pattern.Shown),
		Format:   FormatMultipleChoice,
		Choices:  shuffled(rng, pattern.Next, Patterns[key.B].Next),
		Answer:   pattern.Next,
		Operands: []int{key.A, key.B},
		Key:      key,
	}, nil
}
