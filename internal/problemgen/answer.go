package problemgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/mathhelper/internal/skill"
)

// ErrNoAnswer is returned when the submitted answer is empty.
var ErrNoAnswer = errors.New("no answer provided")

// CheckAnswer compares the student's input against the correct answer.
//
// Surrounding whitespace is trimmed and the rest must match exactly: there is
// no partial credit and no numeric tolerance. For picture questions a panel
// letter (A, B, C) selects that panel. An empty answer returns ErrNoAnswer.
func CheckAnswer(submitted string, q *Question) (bool, error) {
	answer, err := ResolveAnswer(submitted, q)
	if err != nil {
		return false, err
	}
	return answer == q.Answer, nil
}

// ResolveAnswer normalizes a submitted answer to the value it denotes: the
// trimmed input, or for picture questions the contents of the chosen panel.
func ResolveAnswer(submitted string, q *Question) (string, error) {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return "", ErrNoAnswer
	}

	if q.Format == FormatMultipleChoice {
		if idx, ok := PanelIndex(submitted); ok && idx < len(q.Choices) {
			return q.Choices[idx], nil
		}
	}
	return submitted, nil
}

// PanelLabel returns the letter shown for the panel at idx (0 -> "A").
func PanelLabel(idx int) string {
	return string(rune('A' + idx))
}

// PanelIndex parses a single panel letter, case-insensitively.
func PanelIndex(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	}
	return 0, false
}

// DescribeMiss formats a wrong-answer log line naming the question, the
// submitted answer and the correct answer.
func DescribeMiss(q *Question, submitted string) string {
	base := fmt.Sprintf(
		"%s (%s): answered %s for '%s', correct answer was %s",
		skill.Name(q.SkillID),
		q.Tier,
		submitted,
		q.Text,
		q.Answer,
	)
	if q.Picture != "" {
		base += fmt.Sprintf(" [picture: %s]", q.Picture)
	}
	if len(q.Choices) > 0 {
		base += fmt.Sprintf(" [choices: %s]", strings.Join(q.Choices, ", "))
	}
	return base
}
