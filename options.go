package hamscan

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/hupe1980/hamscan/distance"
	"github.com/hupe1980/hamscan/partition"
	"github.com/hupe1980/hamscan/progress"
	"github.com/hupe1980/hamscan/resource"
)

type options struct {
	workers           int
	mode              partition.Mode
	adjacency         bool
	kernel            distance.Kernel
	reportInterval    uint64
	reportMinInterval time.Duration
	bucketWidth       int
	strict            bool
	metricsCollector  MetricsCollector
	logger            *Logger
	resources         *resource.Controller
	now               func() time.Time
}

// Option configures a Scanner.
type Option func(*options)

// WithWorkers sets the number of parallel workers.
// The default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithPartitionMode selects how pairs are divided among workers.
//
// partition.ModeFull (default) compares every pair exactly once.
// partition.ModeWithin only compares elements inside the same contiguous
// slice: pairs spanning two slices are never compared and the trailing
// n mod workers elements take part in no comparison at all. The dropped
// elements are listed in Result.Dropped.
func WithPartitionMode(m partition.Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithAdjacency enables recording the qualifying pairs as an adjacency
// list keyed by the first fingerprint of each pair.
//
// The adjacency list grows with the number of matches. Leave it disabled
// for large data sets with loose thresholds.
func WithAdjacency(enabled bool) Option {
	return func(o *options) {
		o.adjacency = enabled
	}
}

// WithKernel selects the distance kernel. The default is distance.KernelAuto,
// which can be overridden by the HAMSCAN_KERNEL environment variable.
func WithKernel(k distance.Kernel) Option {
	return func(o *options) {
		o.kernel = k
	}
}

// WithReportInterval sets the number of pairs between progress snapshots.
// The interval must be a power of two.
func WithReportInterval(n uint64) Option {
	return func(o *options) {
		o.reportInterval = n
	}
}

// WithReportMinInterval limits progress snapshots to at most one per period
// and worker. Zero disables the limit.
func WithReportMinInterval(d time.Duration) Option {
	return func(o *options) {
		o.reportMinInterval = d
	}
}

// WithBucketWidth sets the width of the distance ranges in progress snapshots.
func WithBucketWidth(width int) Option {
	return func(o *options) {
		o.bucketWidth = width
	}
}

// WithStrict makes hex round-trip mismatches fatal when loading.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hamscan.BasicMetricsCollector{}
//	s, _ := hamscan.New(8, hamscan.WithMetricsCollector(metrics))
//	// ... scan ...
//	stats := metrics.GetStats()
//	fmt.Printf("Scans: %d, Matches: %d\n", stats.ScanCount, stats.ScanMatches)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := hamscan.NewJSONLogger(slog.LevelInfo)
//	s, _ := hamscan.New(8, hamscan.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController shares memory, concurrency and read limits with
// other scanners using the same controller. Loading reserves eight bytes per
// slot of data set capacity as it grows, so the memory limit bounds peak load
// memory. ScanSource holds the reservation until the scan finishes.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.resources = c
	}
}

func withClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		workers:          runtime.NumCPU(),
		mode:             partition.ModeFull,
		kernel:           distance.KernelAuto,
		reportInterval:   progress.DefaultInterval,
		bucketWidth:      progress.DefaultBucketWidth,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		now:              time.Now,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
