package aggregate

import "github.com/hupe1980/hamscan/dataset"

// Edge is a neighbor found within the distance threshold.
type Edge struct {
	Partner  dataset.Fingerprint
	Distance int
}

// Adjacency maps a fingerprint to the neighbors recorded under it.
//
// A qualifying pair (a, b) is recorded once, under the element enumerated
// first. Use Symmetric for a view indexed in both directions.
type Adjacency struct {
	edges map[dataset.Fingerprint][]Edge
	keys  []dataset.Fingerprint // first-insertion order
	size  int
}

// NewAdjacency creates an empty adjacency map.
func NewAdjacency() *Adjacency {
	return &Adjacency{
		edges: make(map[dataset.Fingerprint][]Edge),
	}
}

// Append records e under a, creating the list for a on first use.
func (m *Adjacency) Append(a dataset.Fingerprint, e Edge) {
	list, ok := m.edges[a]
	if !ok {
		m.keys = append(m.keys, a)
	}
	m.edges[a] = append(list, e)
	m.size++
}

// Edges returns the neighbors recorded under a.
func (m *Adjacency) Edges(a dataset.Fingerprint) []Edge {
	return m.edges[a]
}

// Keys returns the fingerprints that have at least one edge, in the order
// they were first recorded.
func (m *Adjacency) Keys() []dataset.Fingerprint {
	return m.keys
}

// Len returns the number of fingerprints with at least one edge.
func (m *Adjacency) Len() int {
	return len(m.keys)
}

// EdgeCount returns the total number of recorded edges.
func (m *Adjacency) EdgeCount() int {
	return m.size
}

// Merge appends every edge of other to m, keeping other's key order.
func (m *Adjacency) Merge(other *Adjacency) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		for _, e := range other.edges[k] {
			m.Append(k, e)
		}
	}
}

// Symmetric returns a new map in which every edge (a, b) is also recorded
// as (b, a).
func (m *Adjacency) Symmetric() *Adjacency {
	out := NewAdjacency()
	for _, a := range m.keys {
		for _, e := range m.edges[a] {
			out.Append(a, e)
			out.Append(e.Partner, Edge{Partner: a, Distance: e.Distance})
		}
	}
	return out
}
