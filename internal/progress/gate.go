package progress

import (
	"github.com/abhisek/mathhelper/internal/grading"
	"github.com/abhisek/mathhelper/internal/skill"
)

// MaxGate is the highest value the gate reaches: every test, the final exam
// included, is open.
var MaxGate = skill.Ordinal(skill.Final)

// NextGate returns the last active test after completing the skill at
// ordinal with grade. The gate moves up by one only when the grade passes
// and the completed skill is the newest one unlocked; it never moves down
// and never passes MaxGate.
func NextGate(lastActive, ordinal, grade int) (int, bool) {
	if !grading.Passed(grade) || ordinal+1 <= lastActive {
		return lastActive, false
	}
	if lastActive >= MaxGate {
		return lastActive, false
	}
	return lastActive + 1, true
}

// IsUnlocked reports whether the skill at ordinal may be taken.
func IsUnlocked(lastActive, ordinal int) bool {
	return ordinal >= 1 && ordinal <= lastActive
}
