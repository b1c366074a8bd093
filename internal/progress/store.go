package progress

import (
	"context"

	"github.com/abhisek/mathhelper/internal/skill"
)

// FirstTest is the last active test of a student who has passed nothing.
const FirstTest = 1

// GradeRecord is a student's best result for one skill and tier.
type GradeRecord struct {
	SkillID      skill.ID
	Tier         skill.Tier
	NumCorrect   int
	MaxQuestions int
	Grade        int
}

// WrongAnswerBatch is the wrong-answer log of one run.
type WrongAnswerBatch struct {
	SessionID string
	SkillID   skill.ID
	Tier      skill.Tier
	Practice  bool
	Entries   []string
}

// Store persists student progress. The engine never holds it across runs.
type Store interface {
	// PreviousBestCorrect returns the stored correct count for the skill
	// and tier, or grading.NeverAttempted.
	PreviousBestCorrect(ctx context.Context, student string, id skill.ID, tier skill.Tier) (int, error)

	// RecordGrade replaces the stored best for r.SkillID and r.Tier.
	RecordGrade(ctx context.Context, student string, r GradeRecord) error

	// LastActiveTest returns the highest unlocked ordinal, FirstTest for a
	// new student.
	LastActiveTest(ctx context.Context, student string) (int, error)

	// SetLastActiveTest stores the highest unlocked ordinal.
	SetLastActiveTest(ctx context.Context, student string, ordinal int) error

	// AppendWrongAnswers persists a run's wrong-answer log.
	AppendWrongAnswers(ctx context.Context, student string, batch WrongAnswerBatch) error
}
