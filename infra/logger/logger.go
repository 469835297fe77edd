package logger

import corelogger "github.com/kilianp07/queuesim/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns the default zerolog-backed Logger for the given component.
// The environment is detected via the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}

// NewWithBackend returns a Logger using the named backend ("zerolog" or
// "logrus"). Unknown backends fall back to zerolog.
func NewWithBackend(backend, component string) Logger {
	if backend == "logrus" {
		return NewLogrusLogger(component)
	}
	return NewZerologLogger(component)
}
