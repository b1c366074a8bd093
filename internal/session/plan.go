package session

import (
	"fmt"

	"github.com/abhisek/mathhelper/internal/skill"
)

// Mode is the kind of run a session is.
type Mode string

const (
	// ModeTest is a graded standalone skill test.
	ModeTest Mode = "test"

	// ModePractice is an ungraded run: nothing is recorded except the
	// wrong-answer log.
	ModePractice Mode = "practice"

	// ModeFinal is the cumulative exam sampling across every skill.
	ModeFinal Mode = "final"
)

// Title names a run of id in this mode, e.g. "Coins practice".
func (m Mode) Title(id skill.ID) string {
	switch m {
	case ModeFinal:
		return skill.Name(skill.Final)
	case ModePractice:
		return skill.Name(id) + " practice"
	default:
		return skill.Name(id) + " test"
	}
}

// Plan fixes what a session asks before the first question is drawn.
type Plan struct {
	Mode Mode

	// SkillID is the tested skill, or skill.Final for the cumulative exam.
	SkillID skill.ID

	Tier skill.Tier

	// MaxQuestions is the question budget from the difficulty policy.
	MaxQuestions int

	// Skills are the skills questions are drawn from. A standalone run
	// has exactly one.
	Skills []skill.ID
}

// NewPlan builds the plan for a standalone test or practice run of id.
// An out-of-range tier is treated as Easy.
func NewPlan(id skill.ID, tier skill.Tier, practice bool) (*Plan, error) {
	if id == skill.Final {
		return nil, fmt.Errorf("%s is not a standalone skill; use NewFinalPlan", id)
	}
	sk, err := skill.Get(id)
	if err != nil {
		return nil, err
	}

	tier = tier.Normalize()
	mode := ModeTest
	if practice {
		mode = ModePractice
	}
	return &Plan{
		Mode:         mode,
		SkillID:      sk.ID,
		Tier:         tier,
		MaxQuestions: skill.Budget(sk.ID, tier),
		Skills:       []skill.ID{sk.ID},
	}, nil
}

// NewFinalPlan builds the plan for the cumulative exam at tier.
func NewFinalPlan(tier skill.Tier) *Plan {
	tier = tier.Normalize()
	var ids []skill.ID
	for _, sk := range skill.TestableSkills() {
		ids = append(ids, sk.ID)
	}
	return &Plan{
		Mode:         ModeFinal,
		SkillID:      skill.Final,
		Tier:         tier,
		MaxQuestions: skill.Budget(skill.Final, tier),
		Skills:       ids,
	}
}
