package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nazolab/mogi/internal/app"
	"github.com/nazolab/mogi/internal/assets"
	"github.com/nazolab/mogi/internal/exam"
)

var errNoTerminal = errors.New("mogi needs an interactive terminal")

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an exam",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	startCmd.Flags().Bool("no-splash", false, "Skip the splash screen")
}

// runApp loads the question set, opens the archive, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	set, err := loadQuestionSet()
	if err != nil {
		return err
	}

	opts := app.Options{
		Set:          set,
		Images:       assets.NewResolver(cfg.ImagesDir),
		HandleName:   cfg.HandleName,
		TimeLimit:    timeLimit(set),
		AdvanceDelay: cfg.AdvanceDelay,
		Logger:       logger,
	}
	// Only the start subcommand defines the flag.
	opts.SkipSplash, _ = cmd.Flags().GetBool("no-splash")

	st, err := openStore()
	if err != nil {
		// The exam still runs; results just aren't archived.
		fmt.Fprintln(os.Stderr, "Results archive unavailable:", err)
		logger.Warn().Err(err).Msg("results archive unavailable")
	} else {
		defer st.Close()
		opts.Results = st.ResultRepo()
	}

	return app.Run(opts)
}

func loadQuestionSet() (*exam.Set, error) {
	if cfg.QuestionSet == "" {
		return exam.Default(), nil
	}
	set, err := exam.LoadFile(cfg.QuestionSet)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", cfg.QuestionSet).Str("question_set", set.Name).Msg("question set loaded")
	return set, nil
}

// timeLimit prefers an explicitly configured limit over the set's own. The
// built-in default only applies when the set declares none.
func timeLimit(set *exam.Set) time.Duration {
	if set.TimeLimit > 0 && !cfg.TimeLimitExplicit {
		return set.TimeLimit
	}
	return cfg.TimeLimit
}
