package hamscan

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/hamscan/aggregate"
	"github.com/hupe1980/hamscan/dataset"
	"github.com/hupe1980/hamscan/progress"
)

// Logger wraps slog.Logger with scan-specific context.
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

// ParseLevel parses "debug", "info", "warn" or "error".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(s)))
	return level, err
}

// WithWorker adds a worker field to the logger.
func (l *Logger) WithWorker(worker int) *Logger {
	return &Logger{
		Logger: l.Logger.With("worker", worker),
	}
}

// WithSource adds a source field to the logger.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", source),
	}
}

// LogLoad logs a data set load.
func (l *Logger) LogLoad(ctx context.Context, ds dataset.DataSet, report *dataset.Report, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"error", err,
		)
		return
	}

	args := []any{"elements", ds.Len(), "width", ds.Width()}
	if first, ok := ds.First(); ok {
		args = append(args, "first", first.String())
	}
	if report != nil {
		args = append(args,
			"lines", report.Lines,
			"blank", report.Blank,
			"warnings", report.Warnings,
			"compression", report.Compression.String(),
		)
	}
	l.InfoContext(ctx, "data set loaded", args...)
}

// LogRoundTrip logs a value whose hex re-encoding differs from its input.
func (l *Logger) LogRoundTrip(ctx context.Context, w dataset.RoundTripWarning) {
	l.WarnContext(ctx, "hex round-trip mismatch",
		"line", w.Line,
		"input", w.Text,
		"normalized", w.Normalized,
		"encoded", w.Encoded,
	)
}

// LogEmptyDataSet logs that a scan was skipped.
func (l *Logger) LogEmptyDataSet(ctx context.Context) {
	l.InfoContext(ctx, "data set is empty, nothing to scan")
}

// LogProgress logs a progress snapshot.
func (l *Logger) LogProgress(ctx context.Context, s progress.Snapshot) {
	args := []any{
		"worker", s.Worker,
		"processed", s.Processed,
		"total", s.Total,
		"percent", roundPercent(s.Percent),
		"matches", s.Matches,
		"elapsed", s.Elapsed.Round(time.Millisecond),
		"rate", int64(s.Rate),
	}
	if s.RemainingKnown {
		args = append(args, "remaining", s.Remaining.Round(time.Second))
	} else {
		args = append(args, "remaining", "unknown")
	}
	if len(s.Buckets) > 0 {
		args = append(args, "buckets", progress.FormatBuckets(s.Buckets))
	}
	l.InfoContext(ctx, "progress", args...)
}

// LogWorker logs the completion of one worker.
func (l *Logger) LogWorker(ctx context.Context, p PartitionResult, err error) {
	if err != nil {
		l.ErrorContext(ctx, "worker failed",
			"worker", p.Worker,
			"processed", p.Processed,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "worker completed",
		"worker", p.Worker,
		"pairs", p.Pairs,
		"matches", p.Matches,
		"elapsed", p.Elapsed,
	)
}

// LogSummary logs the outcome of a scan. With adjacency tracking it logs one
// line per key, otherwise one line per histogram distance.
func (l *Logger) LogSummary(ctx context.Context, r *Result) {
	if r.Matches == 0 {
		l.InfoContext(ctx, "no pairs within distance",
			"max_distance", r.MaxDistance,
			"pairs", r.Pairs,
			"elapsed", r.Elapsed,
		)
		return
	}

	l.InfoContext(ctx, "scan completed",
		"max_distance", r.MaxDistance,
		"mode", r.Mode.String(),
		"workers", r.Workers,
		"elements", r.Elements,
		"pairs", r.Pairs,
		"matches", r.Matches,
		"dropped", len(r.Dropped),
		"elapsed", r.Elapsed,
	)

	if r.Adjacency != nil {
		for _, key := range r.Adjacency.Keys() {
			l.InfoContext(ctx, "neighbors",
				"key", key.String(),
				"edges", formatEdges(r.Adjacency.Edges(key)),
			)
		}
		return
	}

	for _, d := range r.Histogram.Distances() {
		l.InfoContext(ctx, "distance",
			"distance", d,
			"count", r.Histogram.Count(d),
		)
	}
}

func formatEdges(edges []aggregate.Edge) string {
	var sb strings.Builder
	for i, e := range edges {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.Partner.String())
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(e.Distance))
	}
	return sb.String()
}

func roundPercent(p float64) float64 {
	return float64(int64(p*100+0.5)) / 100
}
