package store

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathhelper/internal/grading"
	"github.com/abhisek/mathhelper/internal/progress"
	"github.com/abhisek/mathhelper/internal/skill"
)

// GradeRow is a stored best result with its timestamp.
type GradeRow struct {
	progress.GradeRecord
	UpdatedAt time.Time
}

// PreviousBestCorrect returns the stored correct count for the skill and
// tier, or grading.NeverAttempted.
func (s *Store) PreviousBestCorrect(ctx context.Context, student string, id skill.ID, tier skill.Tier) (int, error) {
	query, args := entsql.Dialect(s.dialect).
		Select("num_correct").
		From(entsql.Table("grades")).
		Where(entsql.And(
			entsql.EQ("student", student),
			entsql.EQ("skill_id", string(id)),
			entsql.EQ("tier", tier.String()),
		)).
		Query()

	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return grading.NeverAttempted, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query previous best: %w", err)
	}
	return n, nil
}

// RecordGrade replaces the stored best for r.SkillID and r.Tier.
func (s *Store) RecordGrade(ctx context.Context, student string, r progress.GradeRecord) error {
	query, args := entsql.Dialect(s.dialect).
		Insert("grades").
		Columns("student", "skill_id", "tier", "num_correct", "max_questions", "grade", "updated_at").
		Values(student, string(r.SkillID), r.Tier.String(), r.NumCorrect, r.MaxQuestions, r.Grade, millis(now())).
		OnConflict(
			entsql.ConflictColumns("student", "skill_id", "tier"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save grade: %w", err)
	}
	return nil
}

// Grades returns student's stored bests in unlock order, then by tier.
func (s *Store) Grades(ctx context.Context, student string) ([]GradeRow, error) {
	query, args := entsql.Dialect(s.dialect).
		Select("skill_id", "tier", "num_correct", "max_questions", "grade", "updated_at").
		From(entsql.Table("grades")).
		Where(entsql.EQ("student", student)).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}
	defer rows.Close()

	var out []GradeRow
	for rows.Next() {
		var (
			r         GradeRow
			id, tier  string
			updatedAt int64
		)
		if err := rows.Scan(&id, &tier, &r.NumCorrect, &r.MaxQuestions, &r.Grade, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan grade: %w", err)
		}
		r.SkillID = skill.ID(id)
		r.Tier = skill.ParseTier(tier)
		r.UpdatedAt = fromMillis(updatedAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b GradeRow) int {
		return cmp.Or(
			cmp.Compare(skill.Ordinal(a.SkillID), skill.Ordinal(b.SkillID)),
			cmp.Compare(a.Tier, b.Tier),
		)
	})
	return out, nil
}
