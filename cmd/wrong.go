package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathhelper/internal/skill"
	"github.com/abhisek/mathhelper/internal/store"
)

var wrongCmd = &cobra.Command{
	Use:   "wrong",
	Short: "Inspect the wrong-answer log",
}

var wrongListCmd = &cobra.Command{
	Use:   "list",
	Short: "List missed questions, newest run first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		skillArg, _ := cmd.Flags().GetString("skill")

		var id skill.ID
		if skillArg != "" {
			var err error
			if id, err = skill.Parse(skillArg); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.QueryWrongAnswers(ctx, cfg.Student, id, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No wrong answers recorded.")
			return nil
		}
		var lastSession string
		for _, r := range records {
			if r.SessionID != lastSession {
				kind := "test"
				if r.Practice {
					kind = "practice"
				}
				fmt.Fprintf(out, "\n%s  %s %s (%s)\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04"), skill.Name(r.SkillID), kind, r.Tier)
				lastSession = r.SessionID
			}
			fmt.Fprintf(out, "  %s\n", r.Entry)
		}
		return nil
	},
}

func init() {
	wrongListCmd.Flags().Int("limit", 50, "Maximum number of lines")
	wrongListCmd.Flags().String("skill", "", "Only show this skill")
	wrongCmd.AddCommand(wrongListCmd)
}
