package rewards

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mathhelper/internal/grading"
	"github.com/abhisek/mathhelper/internal/skill"
)

// Repo persists awards.
type Repo interface {
	AppendReward(ctx context.Context, student string, a Award) error
}

// Service computes and records awards for finished runs.
type Service struct {
	repo   Repo
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a Service. repo may be nil, in which case awards are
// computed but not persisted.
func NewService(repo Repo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Award computes the awards earned by r and persists them for student.
// A failure to persist one award is logged and does not drop the others.
func (s *Service) Award(ctx context.Context, student string, r Result) []Award {
	awards := Compute(r, s.now())
	for _, a := range awards {
		if s.repo == nil {
			continue
		}
		if err := s.repo.AppendReward(ctx, student, a); err != nil {
			s.logger.Warn("failed to persist award",
				zap.String("student", student),
				zap.String("kind", string(a.Kind)),
				zap.Error(err))
		}
	}
	return awards
}

// Compute returns the awards earned by r. Practice runs earn streak awards
// only.
func Compute(r Result, now time.Time) []Award {
	var out []Award
	add := func(kind Kind, rarity Rarity, reason string) {
		out = append(out, Award{
			Kind:      kind,
			Rarity:    rarity,
			SkillID:   r.SkillID,
			SessionID: r.SessionID,
			Reason:    reason,
			AwardedAt: now,
		})
	}

	for _, n := range r.StreakMilestones {
		add(KindStreak, StreakRarity(n), fmt.Sprintf("%d correct in a row!", n))
	}
	if r.Practice {
		return out
	}

	name := skill.Name(r.SkillID)
	if grading.Passed(r.Grade) {
		add(KindTrophy, GradeRarity(r.Grade), fmt.Sprintf("Passed %s with %d%%", name, r.Grade))
	}
	if r.MaxQuestions > 0 && r.NumCorrect == r.MaxQuestions {
		add(KindPerfect, RarityLegendary, fmt.Sprintf("Every %s question right", name))
	}
	if r.UnlockedOrdinal > 0 {
		next := nameForOrdinal(r.UnlockedOrdinal)
		add(KindUnlock, OrdinalRarity(r.UnlockedOrdinal), fmt.Sprintf("Unlocked %s", next))
	}
	return out
}

func nameForOrdinal(ordinal int) string {
	for _, sk := range skill.AllSkills() {
		if sk.Ordinal == ordinal {
			return sk.Name
		}
	}
	return fmt.Sprintf("test %d", ordinal)
}
