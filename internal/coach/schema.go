package coach

import (
	"github.com/abhisek/mathhelper/internal/llm"
	"github.com/abhisek/mathhelper/internal/skill"
)

func skillNames() []any {
	var out []any
	for _, s := range skill.TestableSkills() {
		out = append(out, s.Name)
	}
	return out
}

// NoteSchema is the reply shape for a review note.
var NoteSchema = &llm.Schema{
	Name:        "review-note",
	Description: "A short note for a young student about the questions they missed",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three simple sentences describing what went wrong",
			},
			"focus": map[string]any{
				"type":        "array",
				"description": "Skills worth practising next, most important first",
				"items":       map[string]any{"type": "string", "enum": skillNames()},
				"maxItems":    3,
			},
			"encouragement": map[string]any{
				"type":        "string",
				"description": "One friendly sentence",
			},
		},
		"required":             []any{"summary", "focus", "encouragement"},
		"additionalProperties": false,
	},
}
