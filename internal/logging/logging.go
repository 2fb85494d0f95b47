// Package logging configures the process-wide zerolog logger.
//
// The TUI owns the terminal, so log output goes to a size-rotated file
// rather than stdout.
package logging

import (
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file created inside the data directory.
const FileName = "mogi.log"

// Options controls where and how much is logged.
type Options struct {
	Level string // trace, debug, info, warn, error, disabled
	File  string // full path; empty means DataDir/FileName
	// DataDir is used when File is empty.
	DataDir string
	// Out replaces the rotating file when non-nil (tests, --log-file=-).
	Out io.Writer
}

// Setup builds the logger. The returned closer flushes and closes the log
// file; it is a no-op when Out was supplied.
func Setup(opts Options) (zerolog.Logger, io.Closer) {
	zerolog.TimeFieldFormat = time.RFC3339

	var (
		writer io.Writer
		closer io.Closer = nopCloser{}
	)
	if opts.Out != nil {
		writer = opts.Out
	} else {
		path := opts.File
		if path == "" {
			path = filepath.Join(opts.DataDir, FileName)
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		writer, closer = lj, lj
	}

	lvl := ParseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	log := zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Str("app", "mogi").
		Logger()

	return log, closer
}

// ParseLevel maps a level name onto zerolog, falling back to info.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
