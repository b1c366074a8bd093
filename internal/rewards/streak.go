package rewards

// StreakStep is the spacing of streak milestones: a run of correct answers
// earns an award at every multiple of StreakStep.
const StreakStep = 5

// BaseStreakThreshold is the first streak length that earns an award.
const BaseStreakThreshold = StreakStep

// NextStreakThreshold returns the first milestone strictly above current.
func NextStreakThreshold(current int) int {
	if current < 0 {
		current = 0
	}
	return (current/StreakStep + 1) * StreakStep
}

// StreakRarity grows one level per milestone reached: the first milestone is
// common and the fourth and later are legendary.
func StreakRarity(length int) Rarity {
	return climb(length/StreakStep - 1)
}
