// Package logutil wraps a single package-level charmbracelet/log logger so
// every package below logs through one configured sink, the way the
// teacher's textcolor.go centralizes severity-tagged console output behind
// a package-level level variable.
package logutil

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.000",
})

// SetOutput redirects subsequent log output, for tests or a --log-file flag.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel sets the minimum severity logged.
func SetLevel(level log.Level) {
	logger.SetLevel(level)
}

// Logger returns the shared logger, for call sites that want a *log.Logger
// directly (e.g. to build a sub-logger with With()).
func Logger() *log.Logger {
	return logger
}

func Debug(msg interface{}, keyvals ...interface{}) { logger.Debug(msg, keyvals...) }
func Info(msg interface{}, keyvals ...interface{})  { logger.Info(msg, keyvals...) }
func Warn(msg interface{}, keyvals ...interface{})  { logger.Warn(msg, keyvals...) }
func Error(msg interface{}, keyvals ...interface{}) { logger.Error(msg, keyvals...) }
