// Package logging builds the diagnostic logger.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel overrides the level chosen by --verbose.
const EnvLogLevel = "SOPMOD_LOG_LEVEL"

// New returns a console logger writing to w. Diagnostics are hidden unless
// verbose is set; the level in SOPMOD_LOG_LEVEL wins over both.
func New(w io.Writer, verbose bool, getenv func(string) string) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if getenv != nil {
		if lvl, ok := parseLevel(getenv(EnvLogLevel)); ok {
			level = lvl
		}
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
