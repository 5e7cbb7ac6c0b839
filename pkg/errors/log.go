package errors

import (
	"context"
	"log/slog"
	"os"
)

// LogHandler is an ErrorHandler that logs errors through log/slog.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger receives the records. Nil logs to stderr with a text handler.
	Logger *slog.Logger
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// HandleError logs a SceneError. Warnings log at slog.LevelWarn.
func (h *LogHandler) HandleError(err *SceneError) {
	if err == nil {
		return
	}
	level := slog.LevelError
	if err.Severity == SeverityWarning {
		level = slog.LevelWarn
	}
	attrs := []slog.Attr{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
		slog.String("severity", err.Severity.String()),
	}
	if err.Object != "" {
		attrs = append(attrs, slog.String("object", err.Object))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	msg := "scene error"
	if err.Err != nil {
		msg = err.Err.Error()
	}
	h.logger().LogAttrs(context.Background(), level, msg, attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{slog.Any("value", err.Value)}
	if err.Op != "" {
		attrs = append(attrs, slog.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().LogAttrs(context.Background(), slog.LevelError, "scene panic", attrs...)
}
