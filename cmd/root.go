package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathhelper/internal/config"
	"github.com/abhisek/mathhelper/internal/logging"
	"github.com/abhisek/mathhelper/internal/store"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "mathhelper",
	Short:         "Math quizzes for young learners",
	Long:          "Math Helper asks short quizzes on early math skills, grades them and unlocks the next skill as each one is passed.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if s, _ := cmd.Flags().GetString("student"); s != "" {
			c.Student = s
		}
		if d, _ := cmd.Flags().GetString("db"); d != "" {
			c.DB.DSN = d
		}
		cfg = c

		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(c.Env, verbose)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (default ./config.yaml)")
	pf.String("db", "", "Database file for sqlite or URL for postgres (overrides MATHHELPER_DATABASE_DSN)")
	pf.String("student", "", "Student whose progress is used (overrides MATHHELPER_STUDENT)")
	pf.BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(testCmd, practiceCmd, finalCmd)
	rootCmd.AddCommand(skillCmd, statsCmd, wrongCmd, historyCmd, llmCmd, versionCmd)
}

// openStore opens the configured database. A sqlite store with no DSN
// lives at the default data path.
func openStore(ctx context.Context) (*store.Store, error) {
	dsn := cfg.DB.DSN
	if cfg.DB.Driver == store.DriverSQLite {
		var err error
		if dsn == "" {
			dsn, err = store.DefaultDBPath()
		} else {
			err = store.EnsureDir(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	st, err := store.Open(ctx, cfg.DB.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
