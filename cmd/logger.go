package cmd

import (
	"io"

	"github.com/rs/zerolog"
)

// newLogger returns the diagnostic logger. Status lines meant for the operator
// are printed separately; this stream carries request-level detail.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().Timestamp().Logger()
}
