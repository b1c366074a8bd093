package rewards

// Kind identifies the category of award.
type Kind string

const (
	KindTrophy  Kind = "trophy"
	KindPerfect Kind = "perfect"
	KindStreak  Kind = "streak"
	KindUnlock  Kind = "unlock"
)

// AllKinds returns all award kinds in display order.
func AllKinds() []Kind {
	return []Kind{KindTrophy, KindPerfect, KindStreak, KindUnlock}
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindTrophy:
		return "Trophy"
	case KindPerfect:
		return "Perfect Score"
	case KindStreak:
		return "Streak"
	case KindUnlock:
		return "New Test Unlocked"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindTrophy:
		return "🏆"
	case KindPerfect:
		return "⭐"
	case KindStreak:
		return "⚡"
	case KindUnlock:
		return "🔓"
	default:
		return "✦"
	}
}
