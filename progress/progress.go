package progress

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"time"

	"github.com/hupe1980/hamscan/aggregate"
	"golang.org/x/time/rate"
)

const (
	// DefaultInterval is the number of pairs between two snapshots.
	DefaultInterval uint64 = 1 << 15
	// DefaultBucketWidth is the number of distance values per reported bucket.
	DefaultBucketWidth = 5
)

// ErrInterval is returned when the reporting interval is not a power of two.
var ErrInterval = errors.New("progress interval must be a power of two")

// Bucket is a range of distance values in a snapshot.
type Bucket struct {
	Low, High int
	Count     uint64
	// Percent is Count relative to the pairs processed so far.
	Percent float64
}

// Label returns the range as "low-high".
func (b Bucket) Label() string {
	return fmt.Sprintf("%d-%d", b.Low, b.High)
}

// Snapshot is the state of one worker's scan at a point in time.
type Snapshot struct {
	Worker    int
	Processed uint64
	Total     uint64
	Matches   uint64
	Elapsed   time.Duration
	// Rate is in pairs per second; zero when no time has elapsed.
	Rate float64
	// Remaining is only meaningful when RemainingKnown is true.
	Remaining      time.Duration
	RemainingKnown bool
	Percent        float64
	Buckets        []Bucket
}

// Sink receives snapshots.
type Sink interface {
	Report(s Snapshot)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Snapshot)

// Report implements Sink.
func (f SinkFunc) Report(s Snapshot) { f(s) }

// Config configures a Reporter.
type Config struct {
	Worker int
	// Total is the number of pairs the worker will process.
	Total uint64
	// Interval must be a power of two. Zero means DefaultInterval.
	Interval uint64
	// BucketWidth is the width of histogram ranges. Zero means DefaultBucketWidth.
	BucketWidth int
	// MinInterval additionally limits snapshots to one per period.
	// Zero disables throttling.
	MinInterval time.Duration
	// Now overrides the clock (tests).
	Now func() time.Time
}

// Reporter emits snapshots at a fixed pair cadence.
type Reporter struct {
	cfg     Config
	mask    uint64
	start   time.Time
	limiter *rate.Limiter
	sink    Sink
}

// New creates a Reporter and starts its clock.
func New(cfg Config, sink Sink) (*Reporter, error) {
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if bits.OnesCount64(cfg.Interval) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInterval, cfg.Interval)
	}
	if cfg.BucketWidth <= 0 {
		cfg.BucketWidth = DefaultBucketWidth
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	r := &Reporter{
		cfg:   cfg,
		mask:  cfg.Interval - 1,
		start: cfg.Now(),
		sink:  sink,
	}
	if cfg.MinInterval > 0 {
		r.limiter = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
	}
	return r, nil
}

// Due reports whether processed falls on the reporting cadence.
func (r *Reporter) Due(processed uint64) bool {
	return processed != 0 && processed&r.mask == 0
}

// Tick is called after every processed pair. It returns true when a
// snapshot was emitted.
func (r *Reporter) Tick(processed uint64, h *aggregate.Histogram) bool {
	if !r.Due(processed) || r.sink == nil {
		return false
	}

	now := r.cfg.Now()
	if r.limiter != nil && !r.limiter.AllowN(now, 1) {
		return false
	}

	r.sink.Report(Compute(r.cfg.Worker, processed, r.cfg.Total, now.Sub(r.start), h, r.cfg.BucketWidth))
	return true
}

// Compute builds a snapshot. It tolerates elapsed == 0 and total == 0.
func Compute(worker int, processed, total uint64, elapsed time.Duration, h *aggregate.Histogram, bucketWidth int) Snapshot {
	s := Snapshot{
		Worker:    worker,
		Processed: processed,
		Total:     total,
		Elapsed:   elapsed,
	}

	if total > 0 {
		s.Percent = 100 * float64(processed) / float64(total)
	}

	if secs := elapsed.Seconds(); secs > 0 {
		s.Rate = float64(processed) / secs
		if s.Rate > 0 {
			var left uint64
			if total > processed {
				left = total - processed
			}
			s.Remaining = time.Duration(float64(left) / s.Rate * float64(time.Second))
			s.RemainingKnown = true
		}
	}

	if h != nil {
		s.Matches = h.Total()
		s.Buckets = Buckets(h, processed, bucketWidth)
	}
	return s
}

// Buckets groups the histogram into ranges of width distance values, from
// zero up to the largest observed distance.
func Buckets(h *aggregate.Histogram, processed uint64, width int) []Bucket {
	if width <= 0 {
		width = DefaultBucketWidth
	}
	maxDist := h.MaxDistance()
	if maxDist < 0 {
		return nil
	}

	out := make([]Bucket, 0, maxDist/width+1)
	for low := 0; low <= maxDist; low += width {
		b := Bucket{Low: low, High: low + width - 1}
		for d := b.Low; d <= b.High; d++ {
			b.Count += h.Count(d)
		}
		if processed > 0 {
			b.Percent = 100 * float64(b.Count) / float64(processed)
		}
		out = append(out, b)
	}
	return out
}

// FormatBuckets renders buckets as "0-4: 12 (0.04%), 5-9: 3 (0.01%)".
func FormatBuckets(buckets []Bucket) string {
	var sb strings.Builder
	for i, b := range buckets {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %d (%.2f%%)", b.Label(), b.Count, b.Percent)
	}
	return sb.String()
}
