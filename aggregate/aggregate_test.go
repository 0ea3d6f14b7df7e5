package aggregate

import (
	"testing"

	"github.com/hupe1980/hamscan/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	h := NewHistogram()
	assert.Equal(t, uint64(0), h.Total())
	assert.Equal(t, -1, h.MaxDistance())
	assert.Empty(t, h.Distances())

	h.Inc(3)
	h.Inc(3)
	h.Inc(0)
	h.Add(10, 5)
	h.Add(7, 0)
	h.Inc(-1)

	assert.Equal(t, uint64(2), h.Count(3))
	assert.Equal(t, uint64(1), h.Count(0))
	assert.Equal(t, uint64(5), h.Count(10))
	assert.Equal(t, uint64(0), h.Count(7))
	assert.Equal(t, uint64(0), h.Count(99))
	assert.Equal(t, uint64(8), h.Total())
	assert.Equal(t, 10, h.MaxDistance())
	assert.Equal(t, []int{0, 3, 10}, h.Distances())
	assert.Equal(t, map[int]uint64{0: 1, 3: 2, 10: 5}, h.Map())
}

func TestHistogramMerge(t *testing.T) {
	a := NewHistogram()
	a.Inc(1)
	b := NewHistogram()
	b.Add(1, 2)
	b.Add(4, 3)

	clone := a.Clone()
	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, map[int]uint64{1: 3, 4: 3}, a.Map())
	assert.Equal(t, map[int]uint64{1: 1}, clone.Map())
}

func TestAdjacency(t *testing.T) {
	m := NewAdjacency()
	m.Append(5, Edge{Partner: 7, Distance: 1})
	m.Append(1, Edge{Partner: 3, Distance: 1})
	m.Append(5, Edge{Partner: 4, Distance: 1})

	assert.Equal(t, []dataset.Fingerprint{5, 1}, m.Keys())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 3, m.EdgeCount())
	assert.Equal(t, []Edge{{7, 1}, {4, 1}}, m.Edges(5))
	assert.Empty(t, m.Edges(7), "edges are not mirrored")

	sym := m.Symmetric()
	assert.Equal(t, []Edge{{5, 1}}, sym.Edges(7))
	assert.Equal(t, []Edge{{1, 1}}, sym.Edges(3))
	assert.Equal(t, 6, sym.EdgeCount())
}

func TestAggregator(t *testing.T) {
	t.Run("HistogramOnly", func(t *testing.T) {
		a := New(false)
		a.Observe(0, 1, 1)
		a.Observe(1, 3, 1)

		assert.Nil(t, a.Adjacency())
		assert.Equal(t, map[int]uint64{1: 2}, a.Histogram().Map())
		assert.Equal(t, uint64(2), a.Matches())
	})

	t.Run("WithAdjacency", func(t *testing.T) {
		a := New(true)
		a.Observe(0, 1, 1)
		a.Observe(1, 3, 1)

		require.NotNil(t, a.Adjacency())
		assert.Equal(t, []Edge{{Partner: 1, Distance: 1}}, a.Adjacency().Edges(0))
		assert.Equal(t, []Edge{{Partner: 3, Distance: 1}}, a.Adjacency().Edges(1))
		assert.Empty(t, a.Adjacency().Edges(3))
	})

	t.Run("Merge", func(t *testing.T) {
		a := New(true)
		a.Observe(0, 1, 1)
		b := New(true)
		b.Observe(0, 2, 1)
		b.Observe(8, 9, 1)

		a.Merge(b)
		a.Merge(nil)

		assert.Equal(t, uint64(3), a.Matches())
		assert.Equal(t, []dataset.Fingerprint{0, 8}, a.Adjacency().Keys())
		assert.Equal(t, []Edge{{1, 1}, {2, 1}}, a.Adjacency().Edges(0))
	})
}
