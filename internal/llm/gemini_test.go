package llm

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct{ in, want string }{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tc := range tests {
		if got := resolveModel(tc.in, geminiModels); got != tc.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"note": map[string]any{"type": "string", "description": "short note"},
			"focus": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "enum": []string{"Counting", "Coins"}},
				"maxItems": 3,
			},
			"mood": map[string]any{"type": "emoji"},
		},
		"required": []any{"note"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Errorf("Type = %v, want object", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "note" {
		t.Errorf("Required = %v", s.Required)
	}
	if s.Properties["note"].Description != "short note" {
		t.Errorf("note description = %q", s.Properties["note"].Description)
	}

	focus := s.Properties["focus"]
	if focus.Type != genai.TypeArray || focus.Items == nil {
		t.Fatalf("focus = %+v, want array with items", focus)
	}
	if len(focus.Items.Enum) != 2 {
		t.Errorf("focus enum = %v", focus.Items.Enum)
	}
	if focus.MaxItems == nil || *focus.MaxItems != 3 {
		t.Errorf("focus maxItems = %v, want 3", focus.MaxItems)
	}
	if s.Properties["mood"].Type != genai.TypeString {
		t.Errorf("unknown type should fall back to string, got %v", s.Properties["mood"].Type)
	}
}

func TestGeminiStatus(t *testing.T) {
	wrapped := fmt.Errorf("generate: %w", genai.APIError{Code: 429})
	if got := geminiStatus(wrapped); got != 429 {
		t.Errorf("geminiStatus = %d, want 429", got)
	}
	if got := geminiStatus(errors.New("dial tcp")); got != 0 {
		t.Errorf("geminiStatus = %d, want 0", got)
	}
}
