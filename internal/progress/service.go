// Package progress applies a finished session to a student's stored
// progress: personal bests, the unlock gate, the wrong-answer export and
// awards.
package progress

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/mathhelper/internal/grading"
	"github.com/abhisek/mathhelper/internal/rewards"
	"github.com/abhisek/mathhelper/internal/session"
	"github.com/abhisek/mathhelper/internal/skill"
)

// ErrSessionAbandoned is returned when an abandoned run is handed in.
var ErrSessionAbandoned = errors.New("abandoned sessions are not recorded")

// Outcome describes what completing a run changed.
type Outcome struct {
	Grade  int
	Passed bool

	// NewBest is true when the run replaced the stored best.
	NewBest bool

	// PreviousBest is the correct count stored before this run.
	PreviousBest int

	// Unlocked is true when the run moved the gate.
	Unlocked bool

	// LastActiveTest is the gate after this run.
	LastActiveTest int

	Awards []rewards.Award
}

// Service records finished sessions.
type Service struct {
	store   Store
	rewards *rewards.Service
	logger  *zap.Logger
}

// NewService creates a Service. rw and logger may be nil.
func NewService(store Store, rw *rewards.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rw == nil {
		rw = rewards.NewService(nil, logger)
	}
	return &Service{store: store, rewards: rw, logger: logger}
}

// Complete applies sum to student's progress. Practice runs export their
// wrong answers and nothing else.
func (s *Service) Complete(ctx context.Context, student string, sum *session.Summary) (*Outcome, error) {
	if sum.Abandoned {
		return nil, ErrSessionAbandoned
	}
	log := s.logger.With(
		zap.String("student", student),
		zap.String("session_id", sum.SessionID),
		zap.String("skill", string(sum.SkillID)),
		zap.String("tier", sum.Tier.String()))

	out := &Outcome{Grade: sum.Grade, Passed: sum.Passed}
	result := rewards.Result{
		SessionID:        sum.SessionID,
		SkillID:          sum.SkillID,
		Grade:            sum.Grade,
		NumCorrect:       sum.NumCorrect,
		MaxQuestions:     sum.MaxQuestions,
		Practice:         sum.Practice,
		StreakMilestones: sum.StreakMilestones,
	}

	if sum.Practice {
		if err := s.exportWrongAnswers(ctx, student, sum); err != nil {
			return nil, err
		}
		out.Awards = s.rewards.Award(ctx, student, result)
		log.Info("practice run finished", zap.Int("wrong", len(sum.WrongAnswers)))
		return out, nil
	}

	prev, err := s.store.PreviousBestCorrect(ctx, student, sum.SkillID, sum.Tier)
	if err != nil {
		return nil, fmt.Errorf("load previous best: %w", err)
	}
	out.PreviousBest = prev
	if grading.IsBetterOrEqual(sum.NumCorrect, prev) {
		err := s.store.RecordGrade(ctx, student, GradeRecord{
			SkillID:      sum.SkillID,
			Tier:         sum.Tier,
			NumCorrect:   sum.NumCorrect,
			MaxQuestions: sum.MaxQuestions,
			Grade:        sum.Grade,
		})
		if err != nil {
			return nil, fmt.Errorf("record grade: %w", err)
		}
		out.NewBest = true
	}

	last, err := s.store.LastActiveTest(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("load last active test: %w", err)
	}
	next, moved := NextGate(last, skill.Ordinal(sum.SkillID), sum.Grade)
	if moved {
		if err := s.store.SetLastActiveTest(ctx, student, next); err != nil {
			return nil, fmt.Errorf("unlock next test: %w", err)
		}
		result.UnlockedOrdinal = next
	}
	out.Unlocked = moved
	out.LastActiveTest = next

	if err := s.exportWrongAnswers(ctx, student, sum); err != nil {
		return nil, err
	}
	out.Awards = s.rewards.Award(ctx, student, result)

	log.Info("test recorded",
		zap.Int("grade", sum.Grade),
		zap.Bool("new_best", out.NewBest),
		zap.Int("last_active_test", next))
	return out, nil
}

// exportWrongAnswers appends the run's wrong-answer log. It is the last store
// write of Complete: grade and gate writes are idempotent, so a run handed in
// again after a failure stores its log once.
func (s *Service) exportWrongAnswers(ctx context.Context, student string, sum *session.Summary) error {
	if len(sum.WrongAnswers) == 0 {
		return nil
	}
	err := s.store.AppendWrongAnswers(ctx, student, WrongAnswerBatch{
		SessionID: sum.SessionID,
		SkillID:   sum.SkillID,
		Tier:      sum.Tier,
		Practice:  sum.Practice,
		Entries:   sum.WrongAnswers,
	})
	if err != nil {
		return fmt.Errorf("export wrong answers: %w", err)
	}
	return nil
}

// Unlocked reports whether student may take the test for id.
func (s *Service) Unlocked(ctx context.Context, student string, id skill.ID) (bool, error) {
	last, err := s.store.LastActiveTest(ctx, student)
	if err != nil {
		return false, err
	}
	return IsUnlocked(last, skill.Ordinal(id)), nil
}

// Available returns the skills student may take, in unlock order.
func (s *Service) Available(ctx context.Context, student string) ([]skill.Skill, error) {
	last, err := s.store.LastActiveTest(ctx, student)
	if err != nil {
		return nil, err
	}
	var out []skill.Skill
	for _, sk := range skill.AllSkills() {
		if IsUnlocked(last, sk.Ordinal) {
			out = append(out, sk)
		}
	}
	return out, nil
}
