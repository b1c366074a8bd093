package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathhelper/internal/progress"
)

// StudentRecord is one row of the students table.
type StudentRecord struct {
	Name           string
	LastActiveTest int
}

// LastActiveTest returns the highest unlocked test ordinal for student, or
// progress.FirstTest for a student with no record.
func (s *Store) LastActiveTest(ctx context.Context, student string) (int, error) {
	query, args := entsql.Dialect(s.dialect).
		Select("last_active_test").
		From(entsql.Table("students")).
		Where(entsql.EQ("name", student)).
		Query()

	var last int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.FirstTest, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query last active test: %w", err)
	}
	return last, nil
}

// SetLastActiveTest stores the highest unlocked test ordinal for student,
// creating the student on first use.
func (s *Store) SetLastActiveTest(ctx context.Context, student string, ordinal int) error {
	query, args := entsql.Dialect(s.dialect).
		Insert("students").
		Columns("name", "last_active_test", "created_at").
		Values(student, ordinal, millis(now())).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("last_active_test")
			}),
		).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save last active test: %w", err)
	}
	return nil
}

// EnsureStudent creates student with the first test unlocked if it does not
// exist yet.
func (s *Store) EnsureStudent(ctx context.Context, student string) error {
	query, args := entsql.Dialect(s.dialect).
		Insert("students").
		Columns("name", "last_active_test", "created_at").
		Values(student, progress.FirstTest, millis(now())).
		OnConflict(entsql.ConflictColumns("name"), entsql.DoNothing()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Students lists every known student by name.
func (s *Store) Students(ctx context.Context) ([]StudentRecord, error) {
	query, args := entsql.Dialect(s.dialect).
		Select("name", "last_active_test").
		From(entsql.Table("students")).
		OrderBy("name").
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var out []StudentRecord
	for rows.Next() {
		var r StudentRecord
		if err := rows.Scan(&r.Name, &r.LastActiveTest); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
