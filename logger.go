package subspace

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with subspace-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogLeaf logs a leaf construction.
func (l *Logger) LogLeaf(ctx context.Context, start, count, rank int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "leaf construction failed",
			"start", start,
			"count", count,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "leaf constructed",
		"start", start,
		"count", count,
		"rank", rank,
	)
}

// LogMerge logs a merge construction. nullRank is the number of directions
// the right child contributed beyond the left child's basis.
func (l *Logger) LogMerge(ctx context.Context, start, count, rank, nullRank int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "merge failed",
			"start", start,
			"count", count,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "merge completed",
		"start", start,
		"count", count,
		"rank", rank,
		"null_rank", nullRank,
	)
}

// LogBuild logs the completion of a tree build.
func (l *Logger) LogBuild(ctx context.Context, nodes, rootRank int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "tree build failed",
			"nodes", nodes,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "tree build completed",
		"nodes", nodes,
		"root_rank", rootRank,
	)
}
