package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
)

// tables is the schema, oldest first. {{id}} expands to the dialect's
// auto-increment primary key.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS students (
		name TEXT PRIMARY KEY,
		last_active_test INTEGER NOT NULL DEFAULT 1,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS grades (
		student TEXT NOT NULL,
		skill_id TEXT NOT NULL,
		tier TEXT NOT NULL,
		num_correct INTEGER NOT NULL,
		max_questions INTEGER NOT NULL,
		grade INTEGER NOT NULL,
		updated_at BIGINT NOT NULL,
		PRIMARY KEY (student, skill_id, tier)
	)`,
	`CREATE TABLE IF NOT EXISTS wrong_answers (
		id {{id}},
		sequence BIGINT NOT NULL,
		student TEXT NOT NULL,
		session_id TEXT NOT NULL,
		skill_id TEXT NOT NULL,
		tier TEXT NOT NULL,
		practice BOOLEAN NOT NULL DEFAULT FALSE,
		position INTEGER NOT NULL,
		entry TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS wrong_answers_student ON wrong_answers (student, sequence)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id {{id}},
		sequence BIGINT NOT NULL,
		student TEXT NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		mode TEXT NOT NULL,
		skill_id TEXT NOT NULL,
		tier TEXT NOT NULL,
		questions_served INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		grade INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reward_events (
		id {{id}},
		sequence BIGINT NOT NULL,
		student TEXT NOT NULL,
		session_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		rarity TEXT NOT NULL,
		skill_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id {{id}},
		sequence BIGINT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms BIGINT NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL
	)`,
}

// idColumn returns the auto-increment primary key declaration for d.
func idColumn(d string) string {
	if d == dialect.Postgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// migrate creates any missing tables. It only ever adds.
func migrate(ctx context.Context, db *sql.DB, d string) error {
	for _, ddl := range tables {
		stmt := strings.ReplaceAll(ddl, "{{id}}", idColumn(d))
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
