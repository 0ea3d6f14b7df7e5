// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "fingerprints/")
//	rc, err := blobstore.OpenReader(ctx, store, "hashes.txt.zst")
//
// # Features
//
//   - Range reads through Blob.ReadAt
//   - Whole-object fetch with concurrent ranged GETs (feature/s3/manager)
//   - Configurable prefix
package s3
