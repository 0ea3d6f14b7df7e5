// Package aggregate accumulates the results of a pairwise distance scan.
//
// An Aggregator owns a distance Histogram and, optionally, an Adjacency map.
// Aggregators are not safe for concurrent use: every worker owns its own
// instance and partial results are combined with Merge after the workers
// have finished.
package aggregate
