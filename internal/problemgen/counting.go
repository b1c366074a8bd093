package problemgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathhelper/internal/skill"
)

const (
	countingMin = 1
	countingMax = 12
)

// countingObjects are the things pictured in Counting questions.
var countingObjects = []string{"star", "apple", "ball", "duck", "flower", "car"}

type countingStrategy struct{ baseStrategy }

func (s countingStrategy) Generate(t *Tracker, rng Source, tier skill.Tier) (*Question, error) {
	if exhausted(t, 0, countingMax-countingMin+1) {
		return nil, ErrKeyspaceExhausted
	}
	key, err := drawUnused(t, func() (Key, bool) {
		return Key{A: between(rng, countingMin, countingMax)}, true
	})
	if err != nil {
		return nil, err
	}

	n := key.A
	object := countingObjects[rng.IntN(len(countingObjects))]
	return &Question{
		SkillID:  skill.Counting,
		Tier:     tier,
		Text:     fmt.Sprintf("How many %ss are there?", object),
		Format:   FormatNumeric,
		Answer:   strconv.Itoa(n),
		Picture:  strings.TrimSpace(strings.Repeat("* ", n)),
		Operands: []int{n},
		Key:      key,
	}, nil
}
