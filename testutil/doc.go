// Package testutil provides testing utilities for hamscan.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source for generating fingerprint data sets
// with known near-duplicates, and a naive reference scan to check results
// against.
//
// # Data Generation
//
//	rng := testutil.NewRNG(seed)
//	ds := rng.Fingerprints(1000)          // uniform 64-bit values
//	ds = rng.Clustered(1000, 10, 3)       // 10 clusters, members within 3 bits
//
// # Reference Scan
//
//	pairs, hist := testutil.BruteForce(ds, maxDistance)
package testutil
