// Package blobstore abstracts where fingerprint input files are read from.
//
// Implementations:
//   - LocalStore: local file system, memory-mapped
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 (package blobstore/s3)
//   - minio.Store: MinIO and other S3-compatible services (package blobstore/minio)
//
// # Usage
//
//	rc, err := blobstore.OpenReader(ctx, blobstore.NewLocalStore("."), "hashes.txt")
//	if err != nil { ... }
//	defer rc.Close()
package blobstore
