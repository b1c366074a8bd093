package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathhelper/internal/session"
)

const systemPrompt = `You write short review notes for children aged 4 to 7 who just finished a math quiz. Use plain words a young child can follow. Never scold.`

func buildPrompt(sum *session.Summary, maxMisses int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Quiz: %s (%s)\n", title(sum), sum.Tier.DisplayName())
	fmt.Fprintf(&b, "Score: %d of %d (%d%%)\n", sum.NumCorrect, sum.MaxQuestions, sum.Grade)

	if len(sum.SkillResults) > 1 {
		b.WriteString("\nBy skill:\n")
		for _, r := range sum.SkillResults {
			fmt.Fprintf(&b, "- %s: %d of %d\n", r.SkillName, r.Correct, r.Attempted)
		}
	}

	misses := sum.WrongAnswers
	if len(misses) > maxMisses {
		misses = misses[:maxMisses]
	}
	b.WriteString("\nMissed questions:\n")
	for _, m := range misses {
		fmt.Fprintf(&b, "- %s\n", m)
	}
	if extra := len(sum.WrongAnswers) - len(misses); extra > 0 {
		fmt.Fprintf(&b, "- and %d more\n", extra)
	}

	b.WriteString(`
Instructions:
1. Summarise in 2-3 sentences what kind of mistakes were made.
2. List up to three skills to practise next, using the skill names exactly as written above.
3. End with one short encouraging sentence.`)

	return b.String()
}

func title(sum *session.Summary) string {
	if sum.Mode == session.ModeFinal {
		return "Final Exam"
	}
	if len(sum.SkillResults) > 0 {
		return sum.SkillResults[0].SkillName
	}
	return string(sum.SkillID)
}
