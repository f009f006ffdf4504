// Package logging configures the zerolog logger shared by the game and the
// counter engine. Logs go to stderr so they never interleave with the live
// counter line on stdout.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const DefaultLevel = "warn"

// ParseLevel accepts zerolog level names case-insensitively. An empty string
// selects DefaultLevel.
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "invalid log level %q", level)
	}
	return lvl, nil
}

// New builds a human-readable logger writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Stderr is New bound to os.Stderr.
func Stderr(level zerolog.Level) zerolog.Logger {
	return New(os.Stderr, level)
}
