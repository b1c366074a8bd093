package rewards

import "github.com/abhisek/mathhelper/internal/grading"

// Rarity represents how hard an award was to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// ladder orders the rarities from lowest to highest.
var ladder = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// climb returns the rarity level steps above common, clamped to the ladder.
func climb(steps int) Rarity {
	return ladder[max(0, min(steps, len(ladder)-1))]
}

var rarityNames = map[Rarity]string{
	RarityCommon:    "Common",
	RarityRare:      "Rare",
	RarityEpic:      "Epic",
	RarityLegendary: "Legendary",
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return string(r)
}

// GradeRarity returns the trophy rarity for a percentage grade.
func GradeRarity(grade int) Rarity {
	switch {
	case grade >= 90:
		return RarityLegendary
	case grade >= 75:
		return RarityEpic
	case grade >= grading.PassingGrade:
		return RarityRare
	default:
		return RarityCommon
	}
}

// OrdinalRarity returns the unlock rarity for the skill at ordinal. Later
// tests are rarer.
func OrdinalRarity(ordinal int) Rarity {
	switch {
	case ordinal >= 8:
		return RarityLegendary
	case ordinal >= 6:
		return RarityEpic
	case ordinal >= 3:
		return RarityRare
	default:
		return RarityCommon
	}
}
