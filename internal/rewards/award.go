package rewards

import (
	"time"

	"github.com/abhisek/mathhelper/internal/skill"
)

// Award is a single reward earned at the end of a run.
type Award struct {
	Kind      Kind
	Rarity    Rarity
	SkillID   skill.ID
	SessionID string
	Reason    string // e.g. "Passed Arithmetic with 80%"
	AwardedAt time.Time
}

// Result is what the award rules need to know about a finished run.
type Result struct {
	SessionID    string
	SkillID      skill.ID
	Grade        int
	NumCorrect   int
	MaxQuestions int
	Practice     bool

	// StreakMilestones are the streak lengths reached during the run.
	StreakMilestones []int

	// UnlockedOrdinal is the ordinal of the test newly unlocked by this
	// run, or zero.
	UnlockedOrdinal int
}
