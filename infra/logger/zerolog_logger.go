package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger is the default Logger backend for the simulator. Every
// entry carries a component field so engine, service and API logs can be
// told apart in one stream.
type ZerologLogger struct {
	log zerolog.Logger
}

// consoleOutput reports whether logs should be human-readable; JSON lines
// otherwise. Controlled by APP_ENV=dev.
func consoleOutput() bool {
	return strings.ToLower(os.Getenv("APP_ENV")) == "dev"
}

// NewZerologLogger creates a logger tagged with the given component.
func NewZerologLogger(component string) Logger {
	var out io.Writer = os.Stdout
	if consoleOutput() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(out).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

// Debugw attaches the fields to a debug entry; used for event dumps.
func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
