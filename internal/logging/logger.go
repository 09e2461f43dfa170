// Package logging configures the charmbracelet/log loggers used by the
// command line and carries them through contexts.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide default logger
var defaultLogger atomic.Pointer[log.Logger]

// New returns a quiet stderr logger at level. Unknown levels mean info.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// NewInteractive returns a prefixed logger writing to w for command output.
// At debug level it also stamps each line so slow files stand out.
func NewInteractive(w io.Writer, level string) *log.Logger {
	lvl := ParseLevel(level)
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "bracelint",
		ReportTimestamp: lvl == log.DebugLevel,
		TimeFormat:      "15:04:05.000",
	})
	logger.SetLevel(lvl)
	return logger
}

// ParseLevel maps a level name to a log level, case-insensitively.
// "warning" is accepted for warn; anything unrecognized is info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := log.ParseLevel(name)
	if err != nil || lvl == log.FatalLevel {
		return log.InfoLevel
	}
	return lvl
}

// Default returns the process-wide logger, creating an info logger on
// first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
