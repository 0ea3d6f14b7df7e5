// Package progress reports throughput, ETA and a bucketed distance histogram
// while a pair scan is running.
//
// A Reporter is ticked after every processed pair. Every Interval pairs
// (a power of two, so the check is a bitmask test) it computes a Snapshot and
// hands it to a Sink. Reporting is advisory and never changes scan results.
package progress
