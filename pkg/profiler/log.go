package profiler

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogConfig controls the profiler's structured logging. The zero value logs
// at info level, as JSON lines, to stdout.
type LogConfig struct {
	// Level sets the logging level (debug, info, warn, error).
	Level string
	// Pretty enables human-readable console output with colors.
	Pretty bool
	// Output sets the output writer (defaults to os.Stdout).
	Output io.Writer
}

// DefaultLogConfig returns the profiler's default logger configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{Level: "info", Pretty: true, Output: os.Stdout}
}

func newLogger(cfg LogConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05.000"}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// componentLogger returns a logger scoped to one profiler subsystem
// ("profiler", "writer"), so log lines from concurrent threads are easy to
// attribute.
func componentLogger(cfg LogConfig, component string) zerolog.Logger {
	return newLogger(cfg).With().Str("component", component).Logger()
}
