// Package combination enumerates unordered pairs of distinct indices.
//
// Pairs are produced in lexicographic order: i ascending, then j ascending,
// always with i < j. Each unordered pair therefore appears exactly once, and
// its position in that order (its rank) is a dense index in [0, C(n,2)).
// Rank and Unrank convert between the two, which lets callers split the
// pair space into contiguous ranges without materializing it.
package combination
