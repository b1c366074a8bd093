package session

import (
	"testing"

	"github.com/abhisek/mathhelper/internal/problemgen"
	"github.com/abhisek/mathhelper/internal/skill"
)

func TestNewFinalPlan(t *testing.T) {
	for _, tier := range skill.AllTiers() {
		plan := NewFinalPlan(tier)
		if plan.MaxQuestions != skill.Budget(skill.Final, tier) {
			t.Errorf("%s: MaxQuestions = %d", tier, plan.MaxQuestions)
		}
		if len(plan.Skills) != len(skill.TestableSkills()) {
			t.Errorf("%s: %d skills, want every testable skill", tier, len(plan.Skills))
		}
		if plan.Mode != ModeFinal || plan.SkillID != skill.Final {
			t.Errorf("%s: Mode = %q, SkillID = %q", tier, plan.Mode, plan.SkillID)
		}
	}
}

func TestNewPlan(t *testing.T) {
	plan, err := NewPlan(skill.Sequences, skill.TierNormal, true)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if plan.Mode != ModePractice || plan.MaxQuestions != 10 || len(plan.Skills) != 1 {
		t.Errorf("unexpected plan %+v", plan)
	}
}

func TestFinalExam_AsksBudgetAcrossSkills(t *testing.T) {
	state := NewFinalExam(Options{Tier: skill.TierHard, Rand: problemgen.NewSource(5)})
	asked := runToEnd(t, state, always)

	if len(asked) != 40 {
		t.Fatalf("asked %d, want 40", len(asked))
	}
	if state.Practice {
		t.Error("final exam must be graded")
	}

	perSkill := make(map[skill.ID]map[problemgen.Key]bool)
	for _, q := range asked {
		if perSkill[q.SkillID] == nil {
			perSkill[q.SkillID] = make(map[problemgen.Key]bool)
		}
		if perSkill[q.SkillID][q.Key] {
			t.Fatalf("%s key %+v asked twice", q.SkillID, q.Key)
		}
		perSkill[q.SkillID][q.Key] = true
	}
	if len(perSkill) < 4 {
		t.Errorf("only %d skills sampled in 40 questions", len(perSkill))
	}

	sum := BuildSummary(state)
	total := 0
	for _, r := range sum.SkillResults {
		total += r.Attempted
	}
	if total != 40 || sum.Grade != 100 {
		t.Errorf("attempted %d, grade %d", total, sum.Grade)
	}
}

func TestFinalExam_RedrawsWhenSkillExhausted(t *testing.T) {
	state := NewFinalExam(Options{Tier: skill.TierHard, Rand: problemgen.NewSource(9)})

	counting := state.tracker(skill.Counting)
	for n := 1; n <= 12; n++ {
		counting.MarkUsed(problemgen.Key{A: n})
	}
	fractions := state.tracker(skill.Fractions)
	for family := 0; family < 2; family++ {
		for i := range len(problemgen.HalfItems) {
			fractions.MarkUsed(problemgen.Key{Family: family, A: i})
		}
	}

	asked := runToEnd(t, state, always)
	if len(asked) != 40 {
		t.Fatalf("asked %d, want 40", len(asked))
	}
	for _, q := range asked {
		if q.SkillID == skill.Counting || q.SkillID == skill.Fractions {
			t.Fatalf("drew %s after it ran out of questions", q.SkillID)
		}
	}
	if state.EndedEarly {
		t.Error("final exam should not end early while other skills remain")
	}
}

func TestMode_Title(t *testing.T) {
	tests := []struct {
		mode Mode
		id   skill.ID
		want string
	}{
		{ModeTest, skill.Coins, "Coins test"},
		{ModePractice, skill.Counting, "Counting practice"},
		{ModeFinal, skill.Final, "Final Exam"},
	}
	for _, tc := range tests {
		if got := tc.mode.Title(tc.id); got != tc.want {
			t.Errorf("%s.Title(%s) = %q, want %q", tc.mode, tc.id, got, tc.want)
		}
	}
}
