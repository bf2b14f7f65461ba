// package logger provides the structured logger shared by the engine components.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every line written by loggers created in this package.
const Prefix = "oxy"

var (
	once          sync.Once
	defaultLogger *log.Logger
)

// Default returns the package-wide logger, creating it on first use at info level.
//
// Returns:
//   - *log.Logger: the shared logger
func Default() *log.Logger {
	once.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// New creates a logger writing to stderr at the given level.
// Unknown level strings fall back to info.
//
// Parameters:
//   - level: one of "debug", "info", "warn", "error" or "fatal"
//
// Returns:
//   - *log.Logger: the configured logger
func New(level string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          Prefix,
	})
	l.SetLevel(ParseLevel(level))
	return l
}

// SetDefaultLevel changes the level of the package-wide logger.
//
// Parameters:
//   - level: one of "debug", "info", "warn", "error" or "fatal"
func SetDefaultLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to a log.Level, defaulting to info.
//
// Parameters:
//   - level: the level name, case-insensitive
//
// Returns:
//   - log.Level: the parsed level
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
