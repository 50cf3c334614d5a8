// Package logging provides the structured logger shared by the editor,
// importers and exporters.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with editor-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to stderr. The level comes from
// SEATMAP_LOG_LEVEL, falling back to the given default.
func New(defaultLevel string) *Logger {
	levelStr := os.Getenv("SEATMAP_LOG_LEVEL")
	if levelStr == "" {
		levelStr = defaultLevel
	}
	format := os.Getenv("SEATMAP_LOG_FORMAT")
	return NewWithWriter(os.Stderr, levelStr, strings.EqualFold(format, "json"))
}

// NewWithWriter creates a logger writing to w. JSON output is used when
// asJSON is set, text otherwise.
func NewWithWriter(w io.Writer, level string, asJSON bool) *Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return NewWithWriter(io.Discard, "error", false)
}

// ParseLevel converts a level name to slog.Level. Unknown names map to info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent tags every record with the emitting component.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("component", name))}
}

// WithLayout tags every record with the layout being edited.
func (l *Logger) WithLayout(name string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("layout", name))}
}

// WithError adds an error attribute.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// WithFields adds multiple attributes.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{Logger: l.Logger.With(args...)}
}
