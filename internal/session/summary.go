package session

import (
	"time"

	"github.com/abhisek/mathhelper/internal/grading"
	"github.com/abhisek/mathhelper/internal/skill"
)

// Summary is what a finished session hands to the progress store.
type Summary struct {
	SessionID    string
	Mode         Mode
	SkillID      skill.ID
	Tier         skill.Tier
	MaxQuestions int
	NumCorrect   int
	Grade        int
	Passed       bool
	WrongAnswers []string
	SkillResults []SkillResult
	Practice     bool
	Abandoned    bool
	EndedEarly   bool
	BestStreak   int

	// StreakMilestones are the streak thresholds reached, in order.
	StreakMilestones []int

	Duration time.Duration
}

// BuildSummary creates a Summary from the current session state. Skill
// results follow plan order and skip skills that were never asked.
func BuildSummary(state *SessionState) *Summary {
	var results []SkillResult
	for _, id := range state.Plan.Skills {
		if sr, ok := state.PerSkill[id]; ok && sr.Attempted > 0 {
			results = append(results, *sr)
		}
	}

	grade := grading.Percentage(state.NumCorrect, state.MaxQuestions)
	wrong := make([]string, len(state.WrongAnswers))
	copy(wrong, state.WrongAnswers)

	return &Summary{
		SessionID:        state.ID,
		Mode:             state.Plan.Mode,
		SkillID:          state.SkillID,
		Tier:             state.Tier,
		MaxQuestions:     state.MaxQuestions,
		NumCorrect:       state.NumCorrect,
		Grade:            grade,
		Passed:           grading.Passed(grade),
		WrongAnswers:     wrong,
		SkillResults:     results,
		Practice:         state.Practice,
		Abandoned:        state.Phase == PhaseAbandoned,
		EndedEarly:       state.EndedEarly,
		BestStreak:       state.BestStreak,
		StreakMilestones: append([]int(nil), state.StreakMilestones...),
		Duration:         time.Since(state.StartTime),
	}
}
