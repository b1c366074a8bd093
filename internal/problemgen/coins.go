package problemgen

import (
	"fmt"

	"github.com/abhisek/mathhelper/internal/skill"
)

// Coin is one entry of the Coins enumeration.
type Coin struct {
	Name  string
	Cents int
	Look  string // what the coin looks like, shown on a panel
}

// Coins lists the coins a student learns.
var Coins = []Coin{
	{Name: "penny", Cents: 1, Look: "small copper coin, smooth edge"},
	{Name: "nickel", Cents: 5, Look: "thick silver coin, smooth edge"},
	{Name: "dime", Cents: 10, Look: "tiny thin silver coin, ridged edge"},
	{Name: "quarter", Cents: 25, Look: "big silver coin, ridged edge"},
	{Name: "half dollar", Cents: 50, Look: "very big silver coin, ridged edge"},
	{Name: "dollar coin", Cents: 100, Look: "big gold coin, smooth edge"},
}

// CoinQuestionType selects what a Coins question asks about.
type CoinQuestionType int

const (
	CoinByName CoinQuestionType = iota
	CoinByValue
)

type coinsStrategy struct{ baseStrategy }

func (s coinsStrategy) Generate(t *Tracker, rng Source, tier skill.Tier) (*Question, error) {
	key, err := drawUnused(t, func() (Key, bool) {
		qt := rng.IntN(2)
		c := rng.IntN(len(Coins))
		w := rng.IntN(len(Coins))
		if c == w {
			return Key{}, false
		}
		return Key{Family: qt, A: c, B: w}, true
	})
	if err != nil {
		return nil, err
	}

	correct, wrong := Coins[key.A], Coins[key.B]
	q := &Question{
		SkillID:  skill.Coins,
		Tier:     tier,
		Format:   FormatMultipleChoice,
		Operands: []int{key.A, key.B},
		Key:      key,
	}
	switch CoinQuestionType(key.Family) {
	case CoinByValue:
		q.Text = fmt.Sprintf("Which coin is worth %s?", centsLabel(correct.Cents))
		q.Choices = shuffled(rng, correct.Name, wrong.Name)
		q.Answer = correct.Name
	default:
		// The panels picture the coins so the name alone does not give
		// the answer away.
		q.Text = fmt.Sprintf("Which coin is the %s?", correct.Name)
		q.Choices = shuffled(rng, correct.Look, wrong.Look)
		q.Answer = correct.Look
	}
	return q, nil
}

func centsLabel(cents int) string {
	if cents == 1 {
		return "1 cent"
	}
	return fmt.Sprintf("%d cents", cents)
}
