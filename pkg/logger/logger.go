package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger keeps the printf-style call sites used across services while
// emitting structured zerolog events underneath.
type Logger struct {
	info  *zerolog.Logger
	warn  *zerolog.Logger
	error *zerolog.Logger
	debug *zerolog.Logger
}

func New() *Logger {
	return NewWithConfig(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// NewWithConfig builds a logger writing to stdout. format is "json" or "console".
func NewWithConfig(level, format string) *Logger {
	var w io.Writer = os.Stdout
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return build(w, parseLevel(level))
}

// NewWithWriter is used by tests to capture output.
func NewWithWriter(w io.Writer) *Logger {
	return build(w, zerolog.DebugLevel)
}

func build(w io.Writer, level zerolog.Level) *Logger {
	base := zerolog.New(w).Level(level).With().Timestamp().Logger()
	info := base.With().Logger()
	warn := base.With().Logger()
	// errors carry the caller of Error, one frame above this wrapper
	errl := base.With().CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1).Logger()
	debug := base.With().Logger()
	return &Logger{
		info:  &info,
		warn:  &warn,
		error: &errl,
		debug: &debug,
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.debug.Debug().Msgf(format, args...)
}
