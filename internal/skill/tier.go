package skill

import "strings"

// Tier is a difficulty tier. Each tier has its own question budget.
type Tier int

const (
	TierEasy Tier = iota
	TierNormal
	TierHard
)

// AllTiers returns the tiers in ascending difficulty.
func AllTiers() []Tier {
	return []Tier{TierEasy, TierNormal, TierHard}
}

// String returns the lower-case tier name used in storage and flags.
func (t Tier) String() string {
	switch t {
	case TierNormal:
		return "normal"
	case TierHard:
		return "hard"
	default:
		return "easy"
	}
}

// DisplayName returns a capitalized label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierNormal:
		return "Normal"
	case TierHard:
		return "Hard"
	default:
		return "Easy"
	}
}

// ParseTier parses a tier name. Anything unrecognized is treated as Easy.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "medium":
		return TierNormal
	case "hard":
		return TierHard
	default:
		return TierEasy
	}
}

// valid reports whether t is one of the defined tiers.
func (t Tier) valid() bool {
	return t >= TierEasy && t <= TierHard
}

// Normalize maps an out-of-range tier to Easy.
func (t Tier) Normalize() Tier {
	if !t.valid() {
		return TierEasy
	}
	return t
}
