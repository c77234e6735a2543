package envguard

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewConsoleLogger returns a human readable zerolog logger writing to w
// (default: os.Stderr).
func NewConsoleLogger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		With().
		Timestamp().
		Str("component", "envguard").
		Logger()
}
