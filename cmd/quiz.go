package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathhelper/internal/app"
	"github.com/abhisek/mathhelper/internal/coach"
	"github.com/abhisek/mathhelper/internal/llm"
	"github.com/abhisek/mathhelper/internal/problemgen"
	"github.com/abhisek/mathhelper/internal/progress"
	"github.com/abhisek/mathhelper/internal/rewards"
	"github.com/abhisek/mathhelper/internal/session"
	"github.com/abhisek/mathhelper/internal/skill"
)

var testCmd = &cobra.Command{
	Use:   "test <skill>",
	Short: "Take a graded test on an unlocked skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd, args[0], session.ModeTest)
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice <skill>",
	Short: "Practise a skill without affecting grades",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd, args[0], session.ModePractice)
	},
}

var finalCmd = &cobra.Command{
	Use:   "final",
	Short: "Take the final exam across every skill",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd, string(skill.Final), session.ModeFinal)
	},
}

func init() {
	for _, c := range []*cobra.Command{testCmd, practiceCmd, finalCmd} {
		c.Flags().String("tier", "", "Difficulty tier: easy, normal or hard (default from config)")
		c.Flags().Uint64("seed", 0, "Fix the question order (default from config, 0 means random)")
	}
}

func runQuiz(cmd *cobra.Command, skillArg string, mode session.Mode) error {
	ctx := cmd.Context()

	id, err := skill.Parse(skillArg)
	if err != nil {
		return err
	}
	tier := cfg.Tier()
	if t, _ := cmd.Flags().GetString("tier"); t != "" {
		tier = skill.ParseTier(t)
	}
	seed := cfg.Session.Seed
	if s, _ := cmd.Flags().GetUint64("seed"); s != 0 {
		seed = s
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.EnsureStudent(ctx, cfg.Student); err != nil {
		return err
	}

	progressSvc := progress.NewService(st, rewards.NewService(st, logger), logger)
	if mode != session.ModePractice {
		ok, err := progressSvc.Unlocked(ctx, cfg.Student, id)
		if err != nil {
			return fmt.Errorf("check unlock: %w", err)
		}
		if !ok {
			return fmt.Errorf("%s is still locked for %s; pass the earlier tests first", skill.Name(id), cfg.Student)
		}
	}

	opts := session.Options{
		SkillID:  id,
		Tier:     tier,
		Practice: mode == session.ModePractice,
		Logger:   logger,
	}
	if seed != 0 {
		opts.Rand = problemgen.NewSource(seed)
	}
	state, err := newSession(mode, opts)
	if err != nil {
		return err
	}

	runner := app.New(app.Options{
		Student:  cfg.Student,
		Progress: progressSvc,
		Events:   st,
		Coach:    newCoach(cmd, st),
		Logger:   logger,
		In:       os.Stdin,
		Out:      cmd.OutOrStdout(),
	})
	_, err = runner.Run(ctx, state)
	return err
}

func newSession(mode session.Mode, opts session.Options) (*session.SessionState, error) {
	if mode == session.ModeFinal {
		return session.NewFinalExam(opts), nil
	}
	return session.New(opts)
}

// newCoach returns a coach backed by the configured provider, or an
// offline-only coach when none is configured.
func newCoach(cmd *cobra.Command, rec llm.EventRecorder) *coach.Coach {
	lc := cfg.LLMConfig()
	cc := coach.DefaultConfig()
	cc.Timeout = lc.Timeout

	provider, err := newProvider(cmd.Context(), lc, rec, logger)
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			logger.Warn("review notes unavailable", zap.Error(err))
		}
		return coach.New(nil, cc, logger)
	}
	return coach.New(provider, cc, logger)
}
