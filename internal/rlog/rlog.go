// Package rlog is the structured-logging boundary every ambient
// component logs through. The core itself never imports this package —
// spec.md keeps parsing/graph/layout pure — but the executors and the
// CLI route through here.
package rlog

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is an alias of charmbracelet/log's Logger, re-exported with its
// full method set so callers need not import that package.
type Logger = log.Logger

var base = log.NewWithOptions(os.Stderr, log.Options{
	Level:           log.InfoLevel,
	ReportTimestamp: false,
})

// Default returns the process-wide logger.
func Default() *Logger {
	return base
}

// WithPrefix returns a child logger tagged with prefix, e.g. "gitexec"
// or "layout".
func WithPrefix(prefix string) *Logger {
	return base.WithPrefix(prefix)
}

// SetLevel adjusts the process-wide log level (e.g. from a -verbose flag).
func SetLevel(level log.Level) {
	base.SetLevel(level)
}
