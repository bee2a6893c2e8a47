package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init initializes the global logger. Console output goes to stderr so the
// report on stdout stays machine-readable.
func Init(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// New creates a logger writing to the given writer, or the global logger
// when none is supplied. Tests pass io.Discard or a buffer.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		return log.Logger
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// WithComponent tags the global logger with a component field.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
