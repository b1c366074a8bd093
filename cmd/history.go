package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathhelper/internal/skill"
	"github.com/abhisek/mathhelper/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.QuerySessionSummaries(ctx, cfg.Student, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No finished sessions yet.")
			return nil
		}
		fmt.Fprintf(out, "%-16s  %-8s  %-12s  %-6s  %7s  %5s  %6s  %s\n",
			"When", "Mode", "Skill", "Tier", "Correct", "Grade", "Time", "Awards")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, s := range sessions {
			fmt.Fprintf(out, "%-16s  %-8s  %-12s  %-6s  %3d/%-3d  %4d%%  %3d:%02d  %d\n",
				s.Timestamp.Local().Format("2006-01-02 15:04"), s.Mode, skill.Name(skill.ID(s.SkillID)), s.Tier,
				s.CorrectAnswers, s.QuestionsServed, s.Grade, s.DurationSecs/60, s.DurationSecs%60, s.RewardCount)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions")
}
