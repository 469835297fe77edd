package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusLogger implements Logger using sirupsen/logrus. It is kept as an
// alternate backend selectable through the logging configuration.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger creates a LogrusLogger tagged with the component field.
// APP_ENV=dev switches to the human-readable text formatter.
func NewLogrusLogger(component string) Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrusLevel)
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return &LogrusLogger{entry: l.WithField("component", component)}
}

func (l *LogrusLogger) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *LogrusLogger) Debugw(msg string, fields map[string]any) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *LogrusLogger) Infof(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *LogrusLogger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *LogrusLogger) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}
