package aggregate

import "github.com/hupe1980/hamscan/dataset"

// Aggregator collects qualifying pairs for one worker.
type Aggregator struct {
	hist *Histogram
	adj  *Adjacency // nil unless adjacency tracking is enabled
}

// New creates an Aggregator. If trackAdjacency is false only the histogram
// is maintained.
func New(trackAdjacency bool) *Aggregator {
	a := &Aggregator{hist: NewHistogram()}
	if trackAdjacency {
		a.adj = NewAdjacency()
	}
	return a
}

// Observe records one pair. It does not filter by distance; callers invoke
// it only for pairs within their threshold.
func (a *Aggregator) Observe(x, y dataset.Fingerprint, distance int) {
	a.hist.Inc(distance)
	if a.adj != nil {
		a.adj.Append(x, Edge{Partner: y, Distance: distance})
	}
}

// Histogram returns the distance histogram.
func (a *Aggregator) Histogram() *Histogram {
	return a.hist
}

// Adjacency returns the adjacency map, or nil when tracking is disabled.
func (a *Aggregator) Adjacency() *Adjacency {
	return a.adj
}

// Matches returns the number of observed pairs.
func (a *Aggregator) Matches() uint64 {
	return a.hist.Total()
}

// Merge folds other into a. Adjacency edges are only merged when both
// aggregators track them.
func (a *Aggregator) Merge(other *Aggregator) {
	if other == nil {
		return
	}
	a.hist.Merge(other.hist)
	if a.adj != nil {
		a.adj.Merge(other.adj)
	}
}
