package fault

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// SlogLogger adapts any log/slog handler to the Logger interface. Fault
// categories map onto slog levels, the source location, trace, and scope
// snapshot are attached as structured attributes, and the fault's own
// timestamp is carried on the record.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps an existing slog logger.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: l}
}

// NewConsoleLogger creates a colorized console logger on w, in the style used
// for interactive terminals. For plain files see NewFileLogger.
func NewConsoleLogger(w io.Writer) *SlogLogger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
	})
	return &SlogLogger{logger: slog.New(handler)}
}

// NewFileLogger creates an uncolored logger suitable for log files.
func NewFileLogger(w io.Writer) *SlogLogger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:   slog.LevelDebug,
		NoColor: true,
	})
	return &SlogLogger{logger: slog.New(handler)}
}

// defaultLogger is the sink a handler falls back to when none is configured.
func defaultLogger() Logger {
	return NewConsoleLogger(os.Stderr)
}

// LogFault delivers a fault as one structured log record.
func (s *SlogLogger) LogFault(f *Fault, traceOffset int, includeScope bool) error {
	attrs := []slog.Attr{
		slog.String("category", f.Category.String()),
		slog.String("file", f.File),
		slog.Int("line", f.Line),
	}

	// The dispatch pipeline applies traceOffset when capturing, so an attached
	// trace is already free of dispatch-machinery frames. Adapters that
	// capture stacks themselves would skip traceOffset frames here instead.
	if len(f.Trace) > 0 {
		rendered := make([]string, len(f.Trace))
		for i, fr := range f.Trace {
			rendered[i] = fmt.Sprintf("%s (%s:%d)", fr.Function, fr.File, fr.Line)
		}
		attrs = append(attrs, slog.Any("trace", rendered))
	}

	if includeScope && len(f.Scope) > 0 {
		scope := make([]any, 0, len(f.Scope))
		for k, v := range f.Scope {
			scope = append(scope, slog.Any(k, v))
		}
		attrs = append(attrs, slog.Group("scope", scope...))
	}

	record := slog.NewRecord(f.Timestamp, levelFor(f.Category), f.Message, 0)
	record.AddAttrs(attrs...)
	return s.logger.Handler().Handle(context.Background(), record)
}

// levelFor maps a fault category onto a slog level.
func levelFor(c Category) slog.Level {
	switch c {
	case CategoryFatal, CategoryParse, CategoryRecoverable:
		return slog.LevelError
	case CategoryWarning, CategoryDeprecated:
		return slog.LevelWarn
	case CategoryNotice:
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
