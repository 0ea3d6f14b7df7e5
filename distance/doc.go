// Package distance provides Hamming distance kernels for 64-bit fingerprints.
//
// Two kernels are available:
//   - KernelPopcount: a single hardware population count (POPCNT on x86-64,
//     CNT on ARM64) over a XOR b. Exact, but cannot stop early.
//   - KernelBounded: clears one set bit per iteration and stops as soon as
//     the running count exceeds the caller's bound. Useful on hardware
//     without a popcount instruction.
//
// # Usage
//
//	fn, _ := distance.Provider(distance.KernelAuto)
//	if d := fn(a, b, maxDistance); d <= maxDistance {
//	    // a and b are within maxDistance bits of each other
//	}
//
// Set HAMSCAN_KERNEL=popcount|bounded to override the automatic choice.
package distance
