package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

// get returns the process-wide logger, creating it on first use.
func get() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "oxy",
		})
		singleton.SetLevel(log.InfoLevel)
	})
	return singleton
}

// Logger returns the underlying charmbracelet logger.
//
// Returns:
//   - *log.Logger: the shared logger instance
func Logger() *log.Logger {
	return get()
}

// With returns a child logger that attaches the given key/value pairs to every entry.
//
// Parameters:
//   - keyvals: alternating keys and values
//
// Returns:
//   - *log.Logger: the child logger
func With(keyvals ...any) *log.Logger {
	return get().With(keyvals...)
}

// SetLevel changes the minimum level that is written.
//
// Parameters:
//   - level: the new minimum level (e.g. log.DebugLevel)
func SetLevel(level log.Level) {
	get().SetLevel(level)
}

// SetOutput redirects all log output to w.
//
// Parameters:
//   - w: the destination writer
func SetOutput(w io.Writer) {
	get().SetOutput(w)
}

// Debug logs a printf-style message at debug level.
func Debug(msg string, args ...any) {
	get().Helper()
	get().Debugf(msg, args...)
}

// Info logs a printf-style message at info level.
func Info(msg string, args ...any) {
	get().Helper()
	get().Infof(msg, args...)
}

// Warn logs a printf-style message at warn level.
func Warn(msg string, args ...any) {
	get().Helper()
	get().Warnf(msg, args...)
}

// Error logs a printf-style message at error level.
func Error(msg string, args ...any) {
	get().Helper()
	get().Errorf(msg, args...)
}
