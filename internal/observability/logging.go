// Package observability carries per-run log attributes on the context so every log
// line of a benchmark step names the run root and the step.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/versobench/internal/logfields"
)

// LogContext holds the attributes attached to context-aware log calls.
type LogContext struct {
	Root  string
	Opt   string
	Stage string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithRun records the metric root and optimization variant of the run.
func WithRun(ctx context.Context, root, opt string) context.Context {
	lc := GetContext(ctx)
	lc.Root = root
	lc.Opt = opt
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage records the current step.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := GetContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

// GetContext returns the log context of ctx, or the zero value.
func GetContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

func attrs(ctx context.Context, extra []slog.Attr) []slog.Attr {
	lc := GetContext(ctx)
	out := make([]slog.Attr, 0, 3+len(extra))
	if lc.Root != "" {
		out = append(out, slog.String("root", lc.Root))
	}
	if lc.Opt != "" {
		out = append(out, slog.String("opt", lc.Opt))
	}
	if lc.Stage != "" {
		out = append(out, logfields.Stage(lc.Stage))
	}
	return append(out, extra...)
}

func InfoContext(ctx context.Context, msg string, a ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelInfo, msg, attrs(ctx, a)...)
}

func WarnContext(ctx context.Context, msg string, a ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelWarn, msg, attrs(ctx, a)...)
}

func ErrorContext(ctx context.Context, msg string, a ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelError, msg, attrs(ctx, a)...)
}

func DebugContext(ctx context.Context, msg string, a ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelDebug, msg, attrs(ctx, a)...)
}
