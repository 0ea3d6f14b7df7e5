// Package partition splits a pairwise scan into independent jobs and runs
// them concurrently.
//
// Two modes are supported:
//
//   - ModeFull (default) splits the lexicographic pair rank space
//     [0, C(n,2)) into contiguous spans. Every pair is scanned exactly once.
//   - ModeWithin splits the elements into floor(n/w) sized slices and only
//     compares elements within the same slice. Cross-slice pairs are never
//     compared and the n mod w trailing elements are dropped. This is lossy
//     and must be selected explicitly; Plan.Dropped and Plan.Covered make
//     the loss visible.
//
// Jobs share the data set read-only and own all of their mutable state.
package partition
