package combination

import (
	"iter"
	"math"
)

// Binomial returns C(n, r). It multiplies over the shorter of the two
// ranges (r = min(r, n-r)); every intermediate value is an exact binomial
// coefficient, so integer division never truncates.
func Binomial(n, r int) uint64 {
	if r < 0 || n < 0 || r > n {
		return 0
	}
	r = min(r, n-r)

	result := uint64(1)
	for i := 1; i <= r; i++ {
		result = result * uint64(n-r+i) / uint64(i)
	}
	return result
}

// Count returns the number of unordered pairs over n elements.
func Count(n int) uint64 {
	return Binomial(n, 2)
}

// Pairs yields every (i, j) with 0 <= i < j < n in lexicographic order.
func Pairs(n int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if !yield(i, j) {
					return
				}
			}
		}
	}
}

// rowOffset is the rank of the first pair in row i, i.e. (i, i+1).
func rowOffset(i, n int) uint64 {
	ui, un := uint64(i), uint64(n)
	return ui*(un-1) - ui*(ui-1)/2
}

// Rank returns the lexicographic index of (i, j). It requires i < j < n.
func Rank(i, j, n int) uint64 {
	return rowOffset(i, n) + uint64(j-i-1)
}

// Unrank returns the pair at lexicographic index k. It requires k < Count(n).
func Unrank(k uint64, n int) (int, int) {
	// Largest i with rowOffset(i) <= k, from the quadratic root, then
	// corrected for floating point error.
	m := float64(2*n - 1)
	disc := m*m - 8*float64(k)
	if disc < 0 {
		disc = 0
	}
	i := int((m - math.Sqrt(disc)) / 2)
	i = max(0, min(i, n-2))

	for i > 0 && rowOffset(i, n) > k {
		i--
	}
	for i+1 < n-1 && rowOffset(i+1, n) <= k {
		i++
	}

	return i, i + 1 + int(k-rowOffset(i, n))
}

// Range yields the pairs whose rank lies in [from, to), in lexicographic
// order. to is clamped to Count(n).
func Range(n int, from, to uint64) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		to = min(to, Count(n))
		if from >= to {
			return
		}

		i, j := Unrank(from, n)
		for k := from; k < to; k++ {
			if !yield(i, j) {
				return
			}
			j++
			if j == n {
				i++
				j = i + 1
			}
		}
	}
}
