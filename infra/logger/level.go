package logger

import (
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
)

var logrusLevel = logrus.InfoLevel

// SetLevel applies the minimum severity to both logging backends.
// Unknown levels leave the defaults in place.
func SetLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logrusLevel = logrus.DebugLevel
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logrusLevel = logrus.InfoLevel
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		logrusLevel = logrus.WarnLevel
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		logrusLevel = logrus.ErrorLevel
	}
}
