package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathhelper/internal/rewards"
	"github.com/abhisek/mathhelper/internal/skill"
)

// RewardRecord is a stored award.
type RewardRecord struct {
	SessionID string
	Kind      rewards.Kind
	Rarity    rewards.Rarity
	SkillID   skill.ID
	Reason    string
	Sequence  int64
	Timestamp time.Time
}

// AppendReward records an award for student.
func (s *Store) AppendReward(ctx context.Context, student string, a rewards.Award) error {
	seqNum, err := s.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	awarded := a.AwardedAt
	if awarded.IsZero() {
		awarded = now()
	}
	query, args := entsql.Dialect(s.dialect).
		Insert("reward_events").
		Columns("sequence", "student", "session_id", "kind", "rarity", "skill_id", "reason", "created_at").
		Values(seqNum, student, a.SessionID, string(a.Kind), string(a.Rarity), string(a.SkillID), a.Reason, millis(awarded)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	return nil
}

// QueryRewards returns student's awards, newest first.
func (s *Store) QueryRewards(ctx context.Context, student string, opts QueryOpts) ([]RewardRecord, error) {
	sel := entsql.Dialect(s.dialect).
		Select("session_id", "kind", "rarity", "skill_id", "reason", "sequence", "created_at").
		From(entsql.Table("reward_events")).
		Where(entsql.EQ("student", student))
	opts.apply(sel)

	query, args := sel.Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	defer rows.Close()

	var out []RewardRecord
	for rows.Next() {
		var (
			r                 RewardRecord
			kind, rarity, sid string
			created           int64
		)
		if err := rows.Scan(&r.SessionID, &kind, &rarity, &sid, &r.Reason, &r.Sequence, &created); err != nil {
			return nil, fmt.Errorf("scan reward event: %w", err)
		}
		r.Kind = rewards.Kind(kind)
		r.Rarity = rewards.Rarity(rarity)
		r.SkillID = skill.ID(sid)
		r.Timestamp = fromMillis(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RewardCounts returns student's award counts by kind and in total.
func (s *Store) RewardCounts(ctx context.Context, student string) (map[rewards.Kind]int, int, error) {
	records, err := s.QueryRewards(ctx, student, QueryOpts{})
	if err != nil {
		return nil, 0, fmt.Errorf("query reward counts: %w", err)
	}

	byKind := make(map[rewards.Kind]int)
	for _, r := range records {
		byKind[r.Kind]++
	}
	return byKind, len(records), nil
}

func (s *Store) countRewards(ctx context.Context, sessionID string) (int, error) {
	query, args := entsql.Dialect(s.dialect).
		Select("id").
		From(entsql.Table("reward_events")).
		Where(entsql.EQ("session_id", sessionID)).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count rewards: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	return n, rows.Err()
}
