// Package grading turns a run's correct count into a percentage grade and
// decides pass/fail and personal-best replacement.
package grading

// PassingGrade is the minimum percentage that passes a test.
const PassingGrade = 60

// NeverAttempted is the previous-best value for a skill and tier the student
// has never completed. Every result is at least as good as it.
const NeverAttempted = -1

// Percentage returns round(100 * numCorrect / maxQuestions) with halves
// rounded up. It returns 0 when maxQuestions is not positive.
func Percentage(numCorrect, maxQuestions int) int {
	if maxQuestions <= 0 {
		return 0
	}
	return (200*numCorrect + maxQuestions) / (2 * maxQuestions)
}

// Passed reports whether grade meets the passing threshold.
func Passed(grade int) bool {
	return grade >= PassingGrade
}

// IsBetterOrEqual reports whether newCorrect should replace the stored best
// for the same skill and tier. Ties replace.
func IsBetterOrEqual(newCorrect, previousCorrect int) bool {
	return newCorrect >= previousCorrect
}
