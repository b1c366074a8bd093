package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Session event actions.
const (
	ActionStart     = "start"
	ActionEnd       = "end"
	ActionAbandoned = "abandoned"
)

// SessionEventData captures a session starting or ending.
type SessionEventData struct {
	Student         string
	SessionID       string
	Action          string
	Mode            string
	SkillID         string
	Tier            string
	QuestionsServed int
	CorrectAnswers  int
	Grade           int
	DurationSecs    int
}

// SessionSummaryRecord is a finished session as listed in reports.
type SessionSummaryRecord struct {
	SessionID       string
	Mode            string
	SkillID         string
	Tier            string
	QuestionsServed int
	CorrectAnswers  int
	Grade           int
	DurationSecs    int
	RewardCount     int
	Sequence        int64
	Timestamp       time.Time
}

// AppendSessionEvent records a session lifecycle event.
func (s *Store) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(s.dialect).
		Insert("session_events").
		Columns("sequence", "student", "session_id", "action", "mode", "skill_id", "tier",
			"questions_served", "correct_answers", "grade", "duration_secs", "created_at").
		Values(seqNum, data.Student, data.SessionID, data.Action, data.Mode, data.SkillID, data.Tier,
			data.QuestionsServed, data.CorrectAnswers, data.Grade, data.DurationSecs, millis(now())).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// QuerySessionSummaries returns student's finished sessions, newest first.
func (s *Store) QuerySessionSummaries(ctx context.Context, student string, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := entsql.Dialect(s.dialect).
		Select("session_id", "mode", "skill_id", "tier", "questions_served", "correct_answers",
			"grade", "duration_secs", "sequence", "created_at").
		From(entsql.Table("session_events")).
		Where(entsql.And(
			entsql.EQ("student", student),
			entsql.EQ("action", ActionEnd),
		))
	opts.apply(sel)

	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var out []SessionSummaryRecord
	for rows.Next() {
		var (
			r       SessionSummaryRecord
			created int64
		)
		if err := rows.Scan(&r.SessionID, &r.Mode, &r.SkillID, &r.Tier, &r.QuestionsServed,
			&r.CorrectAnswers, &r.Grade, &r.DurationSecs, &r.Sequence, &created); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		r.Timestamp = fromMillis(created)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	// Count rewards for each session.
	for i := range out {
		n, err := s.countRewards(ctx, out[i].SessionID)
		if err != nil {
			return nil, err
		}
		out[i].RewardCount = n
	}
	return out, nil
}
