package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nazolab/mogi/internal/config"
	"github.com/nazolab/mogi/internal/logging"
	"github.com/nazolab/mogi/internal/store"
)

var (
	cfg       config.Config
	logger    = zerolog.Nop()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:          "mogi",
	Short:        "Timed mock exam in the terminal",
	Long:         "mogi runs a timed riddle exam: answer, annotate each question image, and get a graded result table.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		cfg = c

		dataDir, err := store.DataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		opts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, DataDir: dataDir}
		if cfg.LogFile == "-" {
			opts.Out = os.Stderr
		} else if err := store.EnsureDir(logPath(opts)); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		logger, logCloser = logging.Setup(opts)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/mogi/config.yaml)")
	flags.String("db", "", "Path to SQLite database file (overrides MOGI_DB env var)")
	flags.Duration("time-limit", 0, "Exam time limit, e.g. 45m")
	flags.Duration("advance-delay", 0, "Pause before moving on after a submit")
	flags.String("question-set", "", "Question-set file (YAML or JSON); built-in set when empty")
	flags.String("images-dir", "", "Directory holding the question images")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	flags.String("log-file", "", "Log file path, or - for stderr")
	flags.String("name", "", "Preset handle name for the start form")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}

func logPath(opts logging.Options) string {
	if opts.File != "" {
		return opts.File
	}
	return filepath.Join(opts.DataDir, logging.FileName)
}

// resolveDBPath returns the database path from config (--db, MOGI_DB or
// config.yaml), then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the results archive.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
