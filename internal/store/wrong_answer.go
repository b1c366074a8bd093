package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathhelper/internal/progress"
	"github.com/abhisek/mathhelper/internal/skill"
)

// WrongAnswerRecord is one stored wrong-answer log line.
type WrongAnswerRecord struct {
	SessionID string
	SkillID   skill.ID
	Tier      skill.Tier
	Practice  bool
	Position  int
	Entry     string
	Sequence  int64
	CreatedAt time.Time
}

// AppendWrongAnswers stores a run's wrong-answer log. All lines of one batch
// share a sequence number and keep their order through Position.
func (s *Store) AppendWrongAnswers(ctx context.Context, student string, batch progress.WrongAnswerBatch) error {
	if len(batch.Entries) == 0 {
		return nil
	}
	seqNum, err := s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	created := millis(now())
	ins := entsql.Dialect(s.dialect).
		Insert("wrong_answers").
		Columns("sequence", "student", "session_id", "skill_id", "tier", "practice", "position", "entry", "created_at")
	for i, e := range batch.Entries {
		ins.Values(seqNum, student, batch.SessionID, string(batch.SkillID), batch.Tier.String(), batch.Practice, i, e, created)
	}

	query, args := ins.Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save wrong answers: %w", err)
	}
	return nil
}

// QueryWrongAnswers returns student's wrong-answer log, newest run first and
// in answer order within a run. An empty id returns every skill.
func (s *Store) QueryWrongAnswers(ctx context.Context, student string, id skill.ID, opts QueryOpts) ([]WrongAnswerRecord, error) {
	sel := entsql.Dialect(s.dialect).
		Select("session_id", "skill_id", "tier", "practice", "position", "entry", "sequence", "created_at").
		From(entsql.Table("wrong_answers")).
		Where(entsql.EQ("student", student))
	if id != "" {
		sel.Where(entsql.EQ("skill_id", string(id)))
	}
	opts.apply(sel)
	sel.OrderBy("position")

	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query wrong answers: %w", err)
	}
	defer rows.Close()

	var out []WrongAnswerRecord
	for rows.Next() {
		var (
			r             WrongAnswerRecord
			skillID, tier string
			created       int64
		)
		if err := rows.Scan(&r.SessionID, &skillID, &tier, &r.Practice, &r.Position, &r.Entry, &r.Sequence, &created); err != nil {
			return nil, fmt.Errorf("scan wrong answer: %w", err)
		}
		r.SkillID = skill.ID(skillID)
		r.Tier = skill.ParseTier(tier)
		r.CreatedAt = fromMillis(created)
		out = append(out, r)
	}
	return out, rows.Err()
}
