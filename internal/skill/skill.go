package skill

import (
	"fmt"
	"strings"
)

// ID identifies a testable topic area.
type ID string

const (
	Counting   ID = "counting"
	Comparison ID = "comparison"
	Matching   ID = "matching"
	Sequences  ID = "sequences"
	Arithmetic ID = "arithmetic"
	Estimate   ID = "estimate"
	Fractions  ID = "fractions"
	Coins      ID = "coins"

	// Final is the cumulative exam that samples across every other skill.
	Final ID = "final"
)

// Skill describes one topic area and its place in the unlock order.
type Skill struct {
	ID          ID
	Name        string
	Description string

	// Ordinal is the 1-based position in the unlock order. A student whose
	// last active test is N may take every skill with Ordinal <= N.
	Ordinal int
}

// skills is the unlock order. Final always comes last.
var skills = []Skill{
	{ID: Counting, Name: "Counting", Description: "Count the objects in a picture", Ordinal: 1},
	{ID: Comparison, Name: "Comparison", Description: "More, fewer, same and none", Ordinal: 2},
	{ID: Matching, Name: "Matching", Description: "Find the named shape", Ordinal: 3},
	{ID: Sequences, Name: "Sequences", Description: "What comes next in a pattern", Ordinal: 4},
	{ID: Arithmetic, Name: "Arithmetic", Description: "Add and subtract numbers up to 10", Ordinal: 5},
	{ID: Estimate, Name: "Estimate", Description: "Pick the number that is closest", Ordinal: 6},
	{ID: Fractions, Name: "Fractions", Description: "Halves and wholes", Ordinal: 7},
	{ID: Coins, Name: "Coins", Description: "Coin names and values", Ordinal: 8},
	{ID: Final, Name: "Final Exam", Description: "A mix of every skill", Ordinal: 9},
}

var byID = func() map[ID]Skill {
	m := make(map[ID]Skill, len(skills))
	for _, s := range skills {
		m[s.ID] = s
	}
	return m
}()

// AllSkills returns every skill including Final, in unlock order.
func AllSkills() []Skill {
	out := make([]Skill, len(skills))
	copy(out, skills)
	return out
}

// TestableSkills returns the eight per-skill tests, excluding Final.
func TestableSkills() []Skill {
	out := make([]Skill, 0, len(skills)-1)
	for _, s := range skills {
		if s.ID != Final {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the skill with the given ID.
func Get(id ID) (Skill, error) {
	s, ok := byID[id]
	if !ok {
		return Skill{}, fmt.Errorf("unknown skill %q", id)
	}
	return s, nil
}

// Parse resolves a user-supplied skill name (case-insensitive).
func Parse(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := byID[id]; !ok {
		return "", fmt.Errorf("unknown skill %q", s)
	}
	return id, nil
}

// Ordinal returns the unlock position of id, or 0 if id is unknown.
func Ordinal(id ID) int {
	return byID[id].Ordinal
}

// Name returns the display name of id, falling back to the raw ID.
func Name(id ID) string {
	if s, ok := byID[id]; ok {
		return s.Name
	}
	return string(id)
}
