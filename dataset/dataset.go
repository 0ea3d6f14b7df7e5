package dataset

import (
	"math/bits"
	"strconv"
)

// Fingerprint is a fixed-width hash value.
type Fingerprint uint64

// String returns the lower-case hexadecimal form without prefix.
func (f Fingerprint) String() string {
	return strconv.FormatUint(uint64(f), 16)
}

// DataSet is an ordered sequence of fingerprints in input order.
// It is read-only once loaded and may be shared between goroutines.
type DataSet []Fingerprint

// Len returns the number of elements.
func (ds DataSet) Len() int {
	return len(ds)
}

// First returns the first element, if any.
func (ds DataSet) First() (Fingerprint, bool) {
	if len(ds) == 0 {
		return 0, false
	}
	return ds[0], true
}

// Width returns the number of significant bits of the widest element.
func (ds DataSet) Width() int {
	w := 0
	for _, f := range ds {
		w = max(w, bits.Len64(uint64(f)))
	}
	return w
}
