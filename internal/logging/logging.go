// Package logging provides the debug logger shared across the app.
//
// The TUI owns the terminal, so logs never go to stdout/stderr while it
// runs. Set SIZEMAP_DEBUG to any value to append structured debug output
// to debug.log in the working directory; otherwise logging is a no-op.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var (
	// Debug is the shared debug logger. It discards everything unless
	// SIZEMAP_DEBUG is set.
	Debug *log.Logger

	// Enabled reports whether debug logging is active.
	Enabled bool
)

func init() {
	if os.Getenv("SIZEMAP_DEBUG") == "" {
		Debug = newLogger(io.Discard, log.FatalLevel)
		return
	}
	Enabled = true

	f, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		Debug = newLogger(os.Stderr, log.DebugLevel)
		return
	}
	Debug = newLogger(f, log.DebugLevel)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
