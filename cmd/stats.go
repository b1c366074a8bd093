package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathhelper/internal/grading"
	"github.com/abhisek/mathhelper/internal/rewards"
	"github.com/abhisek/mathhelper/internal/skill"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a student's best grades, unlock progress and awards",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		last, err := st.LastActiveTest(ctx, cfg.Student)
		if err != nil {
			return err
		}
		grades, err := st.Grades(ctx, cfg.Student)
		if err != nil {
			return err
		}
		counts, total, err := st.RewardCounts(ctx, cfg.Student)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		next := "all tests"
		for _, s := range skill.AllSkills() {
			if s.Ordinal == last {
				next = s.Name
			}
		}
		fmt.Fprintf(out, "Student: %s\nUnlocked up to: %s\n\n", cfg.Student, next)

		if len(grades) == 0 {
			fmt.Fprintln(out, "No graded tests yet.")
		} else {
			fmt.Fprintf(out, "%-12s  %-6s  %7s  %5s  %-6s  %s\n", "Skill", "Tier", "Correct", "Grade", "Result", "When")
			fmt.Fprintln(out, strings.Repeat("─", 64))
			for _, g := range grades {
				result := "fail"
				if grading.Passed(g.Grade) {
					result = "pass"
				}
				fmt.Fprintf(out, "%-12s  %-6s  %3d/%-3d  %4d%%  %-6s  %s\n",
					skill.Name(g.SkillID), g.Tier, g.NumCorrect, g.MaxQuestions, g.Grade, result,
					g.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
		}

		fmt.Fprintf(out, "\nAwards: %d\n", total)
		for _, k := range rewards.AllKinds() {
			if n := counts[k]; n > 0 {
				fmt.Fprintf(out, "  %s %-18s %d\n", k.Icon(), k.DisplayName(), n)
			}
		}
		return nil
	},
}
