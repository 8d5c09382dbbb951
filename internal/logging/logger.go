// Package logging wraps charmbracelet/log with a process-wide logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// EnvLogLevel names the environment variable that sets the log level.
const EnvLogLevel = "DEVSERVICES_LOG_LEVEL"

// Logger is a wrapper around charmbracelet/log.Logger
type Logger struct {
	*log.Logger
}

var (
	instance *Logger
	once     sync.Once
)

// GetLogger returns the singleton logger instance
func GetLogger() *Logger {
	once.Do(func() {
		instance = New(os.Stderr)
	})
	return instance
}

// New creates a logger writing to w at info level.
func New(w io.Writer) *Logger {
	return &Logger{
		Logger: log.NewWithOptions(w, log.Options{
			Level:           log.InfoLevel,
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "devservices",
		}),
	}
}

// SetOutput redirects the singleton logger, mostly for tests.
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// SetLogLevel sets the log level from a string
func (l *Logger) SetLogLevel(level string) {
	logLevel, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		logLevel = log.InfoLevel
	}
	l.SetLevel(logLevel)
}

// ConfigureFromEnv sets the level from DEVSERVICES_LOG_LEVEL when present.
func (l *Logger) ConfigureFromEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		l.SetLogLevel(level)
		l.Debug("Log level set from environment variable", "level", level)
	}
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	GetLogger().Debug(msg, keyvals...)
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	GetLogger().Info(msg, keyvals...)
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	GetLogger().Warn(msg, keyvals...)
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	GetLogger().Error(msg, keyvals...)
}
