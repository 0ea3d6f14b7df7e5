package aggregate

// Histogram counts observed pairs per distance value.
//
// Buckets are stored densely by distance. A bucket that was never
// incremented reads as zero and is not reported by Distances or Map.
type Histogram struct {
	counts []uint64
}

// NewHistogram creates an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{}
}

// bucket returns the counter for distance d, growing the container on
// first use (get-or-insert).
func (h *Histogram) bucket(d int) *uint64 {
	if d >= len(h.counts) {
		grown := make([]uint64, d+1)
		copy(grown, h.counts)
		h.counts = grown
	}
	return &h.counts[d]
}

// Add increments the bucket for distance d by n.
func (h *Histogram) Add(d int, n uint64) {
	if d < 0 || n == 0 {
		return
	}
	*h.bucket(d) += n
}

// Inc increments the bucket for distance d by one.
func (h *Histogram) Inc(d int) {
	if d < 0 {
		return
	}
	if d < len(h.counts) {
		h.counts[d]++
		return
	}
	*h.bucket(d)++
}

// Count returns the number of pairs observed at distance d.
func (h *Histogram) Count(d int) uint64 {
	if d < 0 || d >= len(h.counts) {
		return 0
	}
	return h.counts[d]
}

// Total returns the sum of all buckets.
func (h *Histogram) Total() uint64 {
	var total uint64
	for _, c := range h.counts {
		total += c
	}
	return total
}

// MaxDistance returns the largest distance with a non-zero count, or -1.
func (h *Histogram) MaxDistance() int {
	for d := len(h.counts) - 1; d >= 0; d-- {
		if h.counts[d] > 0 {
			return d
		}
	}
	return -1
}

// Distances returns the distances with a non-zero count in ascending order.
func (h *Histogram) Distances() []int {
	var ds []int
	for d, c := range h.counts {
		if c > 0 {
			ds = append(ds, d)
		}
	}
	return ds
}

// Map returns the non-zero buckets as a map.
func (h *Histogram) Map() map[int]uint64 {
	m := make(map[int]uint64)
	for d, c := range h.counts {
		if c > 0 {
			m[d] = c
		}
	}
	return m
}

// Merge adds every bucket of other into h.
func (h *Histogram) Merge(other *Histogram) {
	if other == nil {
		return
	}
	for d, c := range other.counts {
		h.Add(d, c)
	}
}

// Clone returns a deep copy of h.
func (h *Histogram) Clone() *Histogram {
	return &Histogram{counts: append([]uint64(nil), h.counts...)}
}
