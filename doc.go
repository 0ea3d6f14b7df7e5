// Package hamscan finds near-duplicate 64-bit fingerprints.
//
// A data set is a list of unsigned 64-bit integers, typically SimHash or
// perceptual-hash values read from a text file with one hexadecimal value
// per line. hamscan compares every pair of elements by Hamming distance and
// collects the pairs within a configured threshold, both as a distance
// histogram and, optionally, as an adjacency list.
//
// # Quick Start
//
//	ctx := context.Background()
//	s, _ := hamscan.New(8, hamscan.WithLogger(hamscan.NewTextLogger(slog.LevelInfo)))
//	res, _ := s.ScanSource(ctx, blobstore.NewLocalStore("."), "hashes.txt")
//	fmt.Println(res.Matches, res.Histogram.Map())
//
// # Partitioning
//
// Pairs are split among workers by partition.Mode:
//
//   - partition.ModeFull (default) divides the lexicographic pair sequence
//     into contiguous rank ranges. Every pair is compared exactly once.
//   - partition.ModeWithin gives each worker a contiguous slice of floor(n/w)
//     elements and only compares pairs inside a slice. Cross-slice pairs and
//     the trailing n mod w elements are never compared; Result.Dropped lists
//     the latter.
//
// # Sources
//
// Input is read through a blobstore.BlobStore: local files (memory-mapped),
// in-memory blobs, Amazon S3 and MinIO. Gzip, zstd and lz4 input is
// detected and decompressed transparently.
//
// # Observability
//
// Workers emit progress snapshots every 2^k pairs through the configured
// Logger and MetricsCollector. See the metrics/prometheus package for a
// Prometheus collector.
package hamscan
