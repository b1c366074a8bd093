package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/mathhelper/internal/grading"
)

// WriteReport prints the report card: score and time first, then per-skill
// rows, awards and the review note.
func WriteReport(w io.Writer, r *Report) {
	sum := r.Summary
	rule := strings.Repeat("─", 40)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Score: %d of %d (%d%%)\n", sum.NumCorrect, sum.MaxQuestions, sum.Grade)

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	fmt.Fprintf(w, "Time:  %d:%02d\n", mins, secs)
	if sum.BestStreak > 1 {
		fmt.Fprintf(w, "Best streak: %d\n", sum.BestStreak)
	}

	if o := r.Outcome; o != nil && !sum.Practice {
		if sum.Passed {
			fmt.Fprintln(w, "Passed!")
		} else {
			fmt.Fprintf(w, "Not passed yet. You need %d%% to pass.\n", grading.PassingGrade)
		}
		if o.NewBest && o.PreviousBest != grading.NeverAttempted {
			fmt.Fprintf(w, "New best (was %d correct).\n", o.PreviousBest)
		}
	}

	if len(sum.SkillResults) > 1 {
		fmt.Fprintln(w)
		for _, sr := range sum.SkillResults {
			fmt.Fprintf(w, "  %-12s %2d of %2d\n", sr.SkillName, sr.Correct, sr.Attempted)
		}
	}

	if r.Outcome != nil && len(r.Outcome.Awards) > 0 {
		fmt.Fprintln(w)
		for _, a := range r.Outcome.Awards {
			fmt.Fprintf(w, "%s %s (%s): %s\n", a.Kind.Icon(), a.Kind.DisplayName(), a.Rarity.DisplayName(), a.Reason)
		}
	}

	if n := r.Note; n != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, n.Summary)
		if len(n.Focus) > 0 {
			fmt.Fprintf(w, "Practise next: %s\n", strings.Join(n.Focus, ", "))
		}
		fmt.Fprintln(w, n.Encouragement)
	}
	fmt.Fprintln(w, rule)
}
