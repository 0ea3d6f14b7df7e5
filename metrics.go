package hamscan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
// Implementations must be safe for concurrent use: RecordProgress is called
// from every worker.
//
// See the metrics/prometheus package for a ready-made implementation.
type MetricsCollector interface {
	// RecordLoad is called after a data set has been loaded.
	// elements is the number of fingerprints, warnings the number of
	// round-trip mismatches, err is nil if successful.
	RecordLoad(elements, warnings int, duration time.Duration, err error)

	// RecordProgress is called on every progress snapshot of a worker.
	RecordProgress(worker int, processed, total uint64)

	// RecordScan is called after each scan.
	// pairs is the number of comparisons performed, matches the number of
	// pairs within the distance threshold.
	RecordScan(pairs, matches uint64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordProgress(int, uint64, uint64)              {}
func (NoopMetricsCollector) RecordScan(uint64, uint64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadElements   atomic.Int64
	LoadWarnings   atomic.Int64
	ProgressCount  atomic.Int64
	ScanCount      atomic.Int64
	ScanErrors     atomic.Int64
	ScanPairs      atomic.Uint64
	ScanMatches    atomic.Uint64
	ScanTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(elements, warnings int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadElements.Add(int64(elements))
	b.LoadWarnings.Add(int64(warnings))
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordProgress implements MetricsCollector.
func (b *BasicMetricsCollector) RecordProgress(int, uint64, uint64) {
	b.ProgressCount.Add(1)
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(pairs, matches uint64, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.ScanPairs.Add(pairs)
	b.ScanMatches.Add(matches)
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		LoadElements:  b.LoadElements.Load(),
		LoadWarnings:  b.LoadWarnings.Load(),
		ProgressCount: b.ProgressCount.Load(),
		ScanCount:     b.ScanCount.Load(),
		ScanErrors:    b.ScanErrors.Load(),
		ScanPairs:     b.ScanPairs.Load(),
		ScanMatches:   b.ScanMatches.Load(),
		ScanAvgNanos:  b.getAvgScanNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgScanNanos() int64 {
	count := b.ScanCount.Load()
	if count == 0 {
		return 0
	}
	return b.ScanTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount     int64
	LoadErrors    int64
	LoadElements  int64
	LoadWarnings  int64
	ProgressCount int64
	ScanCount     int64
	ScanErrors    int64
	ScanPairs     uint64
	ScanMatches   uint64
	ScanAvgNanos  int64
}
