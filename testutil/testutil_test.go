package testutil

import (
	"math/bits"
	"testing"

	"github.com/hupe1980/hamscan/dataset"
	"github.com/stretchr/testify/assert"
)

func TestFingerprints(t *testing.T) {
	a := NewRNG(4711).Fingerprints(16)
	b := NewRNG(4711).Fingerprints(16)

	assert.Len(t, a, 16)
	assert.Equal(t, a, b, "same seed, same data")
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	first := rng.Uint64()
	rng.Reset()
	assert.Equal(t, first, rng.Uint64())
	assert.Equal(t, int64(7), rng.Seed())
}

func TestFlip(t *testing.T) {
	rng := NewRNG(1)
	for k := 0; k <= 64; k++ {
		f := dataset.Fingerprint(rng.Uint64())
		g := rng.Flip(f, k)
		assert.Equal(t, k, bits.OnesCount64(uint64(f^g)))
	}
}

func TestClustered(t *testing.T) {
	ds := NewRNG(3).Clustered(200, 4, 2)
	assert.Len(t, ds, 200)

	pairs, hist := BruteForce(ds, 4)
	assert.NotEmpty(t, pairs, "clusters produce near pairs")

	var total uint64
	for _, c := range hist {
		total += c
	}
	assert.Equal(t, uint64(len(pairs)), total)
}

func TestBruteForce(t *testing.T) {
	pairs, hist := BruteForce(dataset.DataSet{0, 1, 3, 15}, 1)

	assert.Equal(t, []Pair{{I: 0, J: 1, Distance: 1}, {I: 1, J: 2, Distance: 1}}, pairs)
	assert.Equal(t, map[int]uint64{1: 2}, hist)
}
