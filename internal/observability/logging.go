// Package observability carries scan correlation fields through a context so every log
// line of one scan or reload can be grouped.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/entrynav/internal/logfields"
)

// Trigger names the event that started a scan.
type Trigger string

const (
	TriggerStartup  Trigger = "startup"
	TriggerReload   Trigger = "config_reload"
	TriggerGenerate Trigger = "generate"
	TriggerManual   Trigger = "manual"
)

// LogContext holds structured logging context information.
type LogContext struct {
	ScanID  string
	Trigger Trigger
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithScanID adds a scan ID to the context.
func WithScanID(ctx context.Context, scanID string) context.Context {
	lc := extractLogContext(ctx)
	lc.ScanID = scanID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithTrigger records what started the scan.
func WithTrigger(ctx context.Context, trigger Trigger) context.Context {
	lc := extractLogContext(ctx)
	lc.Trigger = trigger
	return context.WithValue(ctx, logContextKey, lc)
}

func extractLogContext(ctx context.Context) LogContext {
	if ctx == nil {
		return LogContext{}
	}
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

func contextAttrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := make([]slog.Attr, 0, 2)
	if lc.ScanID != "" {
		attrs = append(attrs, logfields.ScanID(lc.ScanID))
	}
	if lc.Trigger != "" {
		attrs = append(attrs, slog.String("trigger", string(lc.Trigger)))
	}
	return attrs
}

func logAt(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	slog.LogAttrs(ctx, level, msg, append(contextAttrs(ctx), attrs...)...)
}

// InfoContext logs at info level with the context's correlation fields.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAt(ctx, slog.LevelInfo, msg, attrs)
}

// WarnContext logs at warn level with the context's correlation fields.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAt(ctx, slog.LevelWarn, msg, attrs)
}

// ErrorContext logs at error level with the context's correlation fields.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAt(ctx, slog.LevelError, msg, attrs)
}

// DebugContext logs at debug level with the context's correlation fields.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logAt(ctx, slog.LevelDebug, msg, attrs)
}
