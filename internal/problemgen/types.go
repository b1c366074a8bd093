package problemgen

import (
	"errors"

	"github.com/abhisek/mathhelper/internal/skill"
)

// ErrKeyspaceExhausted is returned by a Strategy when every question it can
// produce has already been asked in this session.
var ErrKeyspaceExhausted = errors.New("question keyspace exhausted")

// Question is a generated question ready for display. It is immutable once
// issued and is discarded after it has been answered.
type Question struct {
	// SkillID is the skill this question was generated for.
	SkillID skill.ID

	// Tier is the difficulty tier of the session that asked it.
	Tier skill.Tier

	// Text is the prompt shown to the student, e.g. "What is 3 + 4?".
	Text string

	// Format indicates how the student answers this question.
	Format AnswerFormat

	// Choices holds the panel contents, in display order, when Format is
	// FormatMultipleChoice. One of them equals Answer.
	Choices []string

	// Answer is the canonical correct answer.
	Answer string

	// Picture is an optional description of the image shown with the
	// prompt (a row of objects to count, a pictured item).
	Picture string

	// Operands are the skill-specific integer parameters of the prompt.
	Operands []int

	// Operator is set for arithmetic questions only.
	Operator Operator

	// Pivot is the comparison point for Comparison and Estimate questions.
	Pivot *int

	// Key identifies the semantic content of the question within a session.
	Key Key
}

// AnswerFormat describes how the student provides their answer.
type AnswerFormat string

const (
	// FormatNumeric means the student types a number.
	FormatNumeric AnswerFormat = "numeric"

	// FormatMultipleChoice means the student picks one of the pictured panels.
	FormatMultipleChoice AnswerFormat = "multiple_choice"
)

// Strategy generates questions for one skill.
type Strategy interface {
	// Skill returns the skill this strategy serves.
	Skill() skill.ID

	// Generate draws a question whose key is not yet used in t, marks the
	// key used, and returns the question. It returns ErrKeyspaceExhausted
	// when no unused key remains.
	Generate(t *Tracker, rng Source, tier skill.Tier) (*Question, error)

	// Describe formats the wrong-answer log line for a missed question.
	Describe(q *Question, submitted string) string
}

// baseStrategy supplies the shared wrong-answer description.
type baseStrategy struct {
	id skill.ID
}

func (b baseStrategy) Skill() skill.ID { return b.id }

func (b baseStrategy) Describe(q *Question, submitted string) string {
	return DescribeMiss(q, submitted)
}
