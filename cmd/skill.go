package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathhelper/internal/progress"
	"github.com/abhisek/mathhelper/internal/skill"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skills",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every skill with its question budgets and lock state",
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

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%2s  %-12s  %-12s  %-15s  %s\n", "#", "ID", "Name", "Questions", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, s := range skill.AllSkills() {
			var budgets []string
			for _, t := range skill.AllTiers() {
				budgets = append(budgets, fmt.Sprint(skill.Budget(s.ID, t)))
			}
			status := "locked"
			if progress.IsUnlocked(last, s.Ordinal) {
				status = "open"
			}
			fmt.Fprintf(out, "%2d  %-12s  %-12s  %-15s  %s\n",
				s.Ordinal, s.ID, s.Name, strings.Join(budgets, "/"), status)
		}
		fmt.Fprintf(out, "\nQuestions are easy/normal/hard. %s has opened %d of %d.\n",
			cfg.Student, last, len(skill.AllSkills()))
		return nil
	},
}

func init() {
	skillCmd.AddCommand(skillListCmd)
}
