// Package logging provides a logging abstraction layer that decouples the
// application from the underlying logging framework.
package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logging interface used throughout the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached.
	WithError(err error) Logger
	// WithField returns a new logger with a single field attached.
	WithField(key string, value interface{}) Logger
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names used across the application's log output.
const (
	FieldFile   = "file"
	FieldBank   = "bank"
	FieldParser = "parser"
	FieldCount  = "count"
	FieldPages  = "pages"
	FieldScore  = "confidence"
	FieldKind   = "kind"
)

var (
	defaultLogger Logger = NewLogrusAdapter("info", "text")
	mu            sync.RWMutex
)

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide default logger.
func SetDefaultLogger(logger Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
}

// SetAllLogLevels sets the global logrus level, which affects every adapter
// created from the shared logrus state as well as future ones.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
}
