// Package coach turns a finished session's missed questions into a short
// review note for the report card.
package coach

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/mathhelper/internal/llm"
	"github.com/abhisek/mathhelper/internal/session"
	"github.com/abhisek/mathhelper/internal/skill"
)

// ErrNothingToReview is returned for sessions without a wrong answer.
var ErrNothingToReview = errors.New("no wrong answers to review")

// Note is a review note.
type Note struct {
	Summary       string   `json:"summary"`
	Focus         []string `json:"focus"`
	Encouragement string   `json:"encouragement"`

	// Generated is false for the offline fallback.
	Generated bool `json:"-"`
}

// Coach writes review notes. A nil provider always produces the offline note.
type Coach struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{provider: provider, cfg: cfg, logger: logger}
}

// Review asks the model for a note and falls back to the offline note when
// there is no provider or the model fails.
func (c *Coach) Review(ctx context.Context, sum *session.Summary) (*Note, error) {
	if len(sum.WrongAnswers) == 0 {
		return nil, ErrNothingToReview
	}
	if c.provider == nil {
		return Fallback(sum), nil
	}

	note, err := c.generate(ctx, sum)
	if err != nil {
		c.logger.Warn("review note fell back to offline summary",
			zap.String("session_id", sum.SessionID), zap.Error(err))
		return Fallback(sum), nil
	}
	return note, nil
}

func (c *Coach) generate(ctx context.Context, sum *session.Summary) (*Note, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeReviewNote)
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req := llm.UserPrompt(systemPrompt, buildPrompt(sum, c.cfg.MaxMisses))
	req.Schema = NoteSchema
	req.MaxTokens = c.cfg.MaxTokens
	req.Temperature = c.cfg.Temperature

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("review note: %w", err)
	}

	var note Note
	if err := json.Unmarshal(resp.Content, &note); err != nil {
		return nil, fmt.Errorf("parse review note: %w", err)
	}
	note.Generated = true
	return &note, nil
}

// Fallback builds a note from the skill results alone: the weakest skills
// become the focus list.
func Fallback(sum *session.Summary) *Note {
	type weak struct {
		name   string
		missed int
	}
	var ws []weak
	for _, r := range sum.SkillResults {
		if m := r.Attempted - r.Correct; m > 0 {
			ws = append(ws, weak{r.SkillName, m})
		}
	}
	if len(ws) == 0 && sum.SkillID != "" {
		ws = append(ws, weak{skill.Name(sum.SkillID), len(sum.WrongAnswers)})
	}
	slices.SortStableFunc(ws, func(a, b weak) int { return cmp.Compare(b.missed, a.missed) })

	note := &Note{
		Summary:       fmt.Sprintf("You missed %d of %d questions.", len(sum.WrongAnswers), sum.MaxQuestions),
		Encouragement: "Keep practising and you will get there!",
	}
	for i := 0; i < len(ws) && i < 3; i++ {
		note.Focus = append(note.Focus, ws[i].name)
	}
	if sum.Passed {
		note.Encouragement = "Great job passing! A little more practice will make it perfect."
	}
	return note
}
