// Package logging provides the zerolog setup for screenhold.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ConsoleTimeFormat is the timestamp format used by the console writer.
const ConsoleTimeFormat = time.Kitchen

// Config holds logging configuration.
type Config struct {
	Level  string
	Format string // "json" or "console"
}

// New creates a zerolog logger writing to stderr. Diagnostics must never
// pollute stdout, which callers may parse.
func New(cfg Config) zerolog.Logger {
	var output io.Writer = os.Stderr

	switch cfg.Format {
	case "json":
		// JSON is the default zerolog format
	default:
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: ConsoleTimeFormat,
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a config string to a zerolog level. Unknown values fall
// back to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
