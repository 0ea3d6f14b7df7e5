package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/hamscan/dataset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Fingerprints returns n uniformly distributed fingerprints.
// Locks only once per call.
func (r *RNG) Fingerprints(n int) dataset.DataSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds := make(dataset.DataSet, n)
	for i := range ds {
		ds[i] = dataset.Fingerprint(r.rand.Uint64())
	}
	return ds
}

// Flip returns f with k distinct random bits inverted, so the result is at
// Hamming distance exactly k from f.
func (r *RNG) Flip(f dataset.Fingerprint, k int) dataset.Fingerprint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flipLocked(f, k)
}

func (r *RNG) flipLocked(f dataset.Fingerprint, k int) dataset.Fingerprint {
	k = min(k, 64)
	for _, bit := range r.rand.Perm(64)[:k] {
		f ^= 1 << uint(bit)
	}
	return f
}

// Clustered returns n fingerprints drawn around the given number of random
// centers. Each member differs from its center in at most maxFlips bits,
// which yields many pairs within small distances.
func (r *RNG) Clustered(n, clusters, maxFlips int) dataset.DataSet {
	r.mu.Lock()
	defer r.mu.Unlock()

	clusters = max(clusters, 1)
	centers := make([]dataset.Fingerprint, clusters)
	for i := range centers {
		centers[i] = dataset.Fingerprint(r.rand.Uint64())
	}

	ds := make(dataset.DataSet, n)
	for i := range ds {
		c := centers[r.rand.Intn(clusters)]
		ds[i] = r.flipLocked(c, r.rand.Intn(maxFlips+1))
	}
	return ds
}

// Pair is a qualifying pair found by BruteForce.
type Pair struct {
	I, J     int
	Distance int
}

// BruteForce compares every pair with a naive bit loop and returns the pairs
// within maxDistance in lexicographic order, plus their distance histogram.
func BruteForce(ds dataset.DataSet, maxDistance int) ([]Pair, map[int]uint64) {
	var pairs []Pair
	hist := make(map[int]uint64)

	for i := 0; i < len(ds); i++ {
		for j := i + 1; j < len(ds); j++ {
			d := naiveDistance(uint64(ds[i]), uint64(ds[j]))
			if d <= maxDistance {
				pairs = append(pairs, Pair{I: i, J: j, Distance: d})
				hist[d]++
			}
		}
	}
	return pairs, hist
}

func naiveDistance(a, b uint64) int {
	d := 0
	for x := a ^ b; x != 0; x >>= 1 {
		d += int(x & 1)
	}
	return d
}
