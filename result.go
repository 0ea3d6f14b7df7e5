package hamscan

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hamscan/aggregate"
	"github.com/hupe1980/hamscan/partition"
)

// Result is the outcome of a scan.
type Result struct {
	MaxDistance int
	Mode        partition.Mode
	Workers     int
	Elements    int
	// Total is the number of pairs planned across all workers.
	Total uint64
	// Pairs is the number of pairs compared.
	Pairs uint64
	// Matches is the number of pairs within MaxDistance.
	Matches   uint64
	Histogram *aggregate.Histogram
	// Adjacency is nil unless WithAdjacency was set.
	Adjacency *aggregate.Adjacency
	// Covered holds the element indices that took part in a comparison.
	Covered *roaring.Bitmap
	// Dropped lists element indices excluded by ModeWithin.
	Dropped    []int
	Partitions []PartitionResult
	Elapsed    time.Duration
	// Skipped is set when the data set was empty.
	Skipped bool
}

// Complete reports whether every pair of the data set was compared.
func (r *Result) Complete() bool {
	if r.Skipped {
		return true
	}
	n := uint64(r.Elements)
	return r.Pairs == n*(n-1)/2
}

// PartitionResult describes the work of one worker.
type PartitionResult struct {
	Worker int
	// Start and End bound the element slice in ModeWithin.
	Start, End int
	// From and To bound the pair ranks in ModeFull.
	From, To  uint64
	Pairs     uint64
	Processed uint64
	Matches   uint64
	Elapsed   time.Duration
}
