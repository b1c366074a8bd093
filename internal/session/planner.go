package session

import (
	"errors"

	"github.com/abhisek/mathhelper/internal/problemgen"
	"github.com/abhisek/mathhelper/internal/skill"
)

// ErrAllSkillsExhausted is returned when every skill in the plan has run
// out of questions.
var ErrAllSkillsExhausted = errors.New("every skill in the session is out of questions")

// drawQuestion picks a skill uniformly among those not yet exhausted and
// draws a question from it. A skill that reports exhaustion is dropped and
// another is picked, so a final exam keeps going as long as any skill can
// still produce a question.
func drawQuestion(state *SessionState) (*problemgen.Question, error) {
	for {
		candidates := availableSkills(state)
		if len(candidates) == 0 {
			return nil, ErrAllSkillsExhausted
		}

		id := candidates[state.rng.IntN(len(candidates))]
		strategy, err := problemgen.ForSkill(id)
		if err != nil {
			return nil, err
		}

		q, err := problemgen.Generate(strategy, state.tracker(id), state.rng, state.Tier)
		if errors.Is(err, problemgen.ErrKeyspaceExhausted) {
			state.exhausted[id] = true
			state.logger.Debug("skill out of questions", zapSkill(id))
			continue
		}
		if err != nil {
			return nil, err
		}
		return q, nil
	}
}

// availableSkills lists the plan's skills that can still produce questions,
// in plan order.
func availableSkills(state *SessionState) []skill.ID {
	var out []skill.ID
	for _, id := range state.Plan.Skills {
		if !state.exhausted[id] {
			out = append(out, id)
		}
	}
	return out
}
