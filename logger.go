package gridpath

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/gridpath/engine"
)

// Logger wraps slog.Logger with gridpath-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSeed adds a terrain seed field to the logger.
func (l *Logger) WithSeed(seed int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// WithGrid adds grid dimension fields to the logger.
func (l *Logger) WithGrid(width, height int32) *Logger {
	return &Logger{
		Logger: l.Logger.With("width", width, "height", height),
	}
}

// LogStep logs a single expansion step at debug level.
func (l *Logger) LogStep(ctx context.Context, snap engine.StepSnapshot) {
	if snap.Current == nil {
		l.DebugContext(ctx, "frontier drained",
			"step", snap.StepIndex,
			"status", snap.Status.String(),
		)
		return
	}

	l.DebugContext(ctx, "step completed",
		"step", snap.StepIndex,
		"location", snap.Current.Location.String(),
		"g", snap.Current.G,
		"h", snap.Current.H,
		"f", snap.Current.F(),
		"frontier", len(snap.Frontier),
		"closed", snap.Closed.Cardinality(),
		"stale", snap.Stale,
	)
}

// LogSolve logs a finished solve operation.
func (l *Logger) LogSolve(ctx context.Context, result *engine.Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "solve failed",
			"error", err,
		)
		return
	}

	if result.Found {
		l.InfoContext(ctx, "solve completed",
			"path_length", result.Diagnostics.PathLength,
			"cost", result.Cost,
			"explored", result.Diagnostics.TotalExplored,
			"efficiency", result.Diagnostics.Efficiency,
		)
	} else {
		l.InfoContext(ctx, "solve exhausted without a path",
			"explored", result.Diagnostics.TotalExplored,
		)
	}
}

// LogBatchSolve logs a batch solve operation.
func (l *Logger) LogBatchSolve(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch solve completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.InfoContext(ctx, "batch solve completed",
			"count", count,
		)
	}
}
