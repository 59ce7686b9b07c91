// Package logging adapts the infrastructure logger to a key/value interface.
package logging

import (
	infralogger "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/logger"
)

// keyValuePairSize represents the number of elements in a key-value pair.
const keyValuePairSize = 2

// Logger is the key/value logging interface used by the HTTP layer.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
}

// Adapter wraps an infrastructure logger as a Logger.
type Adapter struct {
	log infralogger.Logger
}

// NewAdapter creates a new logger adapter.
func NewAdapter(log infralogger.Logger) *Adapter {
	return &Adapter{log: log}
}

// Info logs an info message with key-value pairs.
func (a *Adapter) Info(msg string, keysAndValues ...any) {
	a.log.Info(msg, toFields(keysAndValues)...)
}

// Error logs an error message with key-value pairs.
func (a *Adapter) Error(msg string, keysAndValues ...any) {
	a.log.Error(msg, toFields(keysAndValues)...)
}

// Warn logs a warning message with key-value pairs.
func (a *Adapter) Warn(msg string, keysAndValues ...any) {
	a.log.Warn(msg, toFields(keysAndValues)...)
}

// Debug logs a debug message with key-value pairs.
func (a *Adapter) Debug(msg string, keysAndValues ...any) {
	a.log.Debug(msg, toFields(keysAndValues)...)
}

// Unwrap returns the underlying structured logger.
func (a *Adapter) Unwrap() infralogger.Logger {
	return a.log
}

// toFields converts key-value pairs to fields. Errors become error fields; a trailing
// key without a value and non-string keys are dropped.
func toFields(keysAndValues []any) []infralogger.Field {
	fields := make([]infralogger.Field, 0, len(keysAndValues)/keyValuePairSize)
	for i := 0; i+1 < len(keysAndValues); i += keyValuePairSize {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr && key == "error" {
			fields = append(fields, infralogger.Error(err))
			continue
		}
		fields = append(fields, infralogger.Any(key, keysAndValues[i+1]))
	}
	return fields
}
