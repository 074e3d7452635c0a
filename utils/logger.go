package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Logger provides leveled, printf-style logging on top of slog.
type Logger struct {
	slog *slog.Logger
}

// LoggerOptions controls where and how the logger writes.
type LoggerOptions struct {
	Writer io.Writer
	Level  string
	Color  bool
}

// NewLogger creates a coloured info-level Logger writing to stdout.
func NewLogger() *Logger {
	return NewLoggerWithOptions(LoggerOptions{Level: "info", Color: true})
}

// NewLoggerWithOptions builds a Logger from explicit options.
// Colour output goes through tint; otherwise the plain slog text handler is used.
func NewLoggerWithOptions(opts LoggerOptions) *Logger {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	level := ParseLevel(opts.Level)

	var handler slog.Handler
	if opts.Color {
		handler = tint.NewHandler(opts.Writer, &tint.Options{
			Level:      level,
			TimeFormat: "2006-01-02 15:04:05",
		})
	} else {
		handler = slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{Level: level})
	}
	return &Logger{slog: slog.New(handler)}
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a Logger that adds key=value to every line.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{slog: l.slog.With(key, value)}
}

func (l *Logger) Info(format string, args ...any) {
	l.slog.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.slog.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.slog.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	l.slog.Debug(fmt.Sprintf(format, args...))
}
