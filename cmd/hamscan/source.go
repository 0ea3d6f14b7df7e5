package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/hamscan/blobstore"
	blobminio "github.com/hupe1980/hamscan/blobstore/minio"
	blobs3 "github.com/hupe1980/hamscan/blobstore/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	schemeFile  = "file"
	schemeS3    = "s3"
	schemeMinio = "minio"
)

// source is a parsed -f argument.
type source struct {
	Scheme   string
	Endpoint string
	Bucket   string
	// Key is the object key, or the path for local files.
	Key string
}

func (s source) String() string {
	switch s.Scheme {
	case schemeS3:
		return "s3://" + s.Bucket + "/" + s.Key
	case schemeMinio:
		return "minio://" + s.Endpoint + "/" + s.Bucket + "/" + s.Key
	default:
		return s.Key
	}
}

// parseSource accepts a local path, s3://bucket/key or
// minio://endpoint/bucket/key.
func parseSource(raw string) (source, error) {
	switch {
	case strings.HasPrefix(raw, "s3://"):
		bucket, key, _ := strings.Cut(strings.TrimPrefix(raw, "s3://"), "/")
		if bucket == "" || key == "" {
			return source{}, fmt.Errorf("invalid s3 source %q: want s3://bucket/key", raw)
		}
		return source{Scheme: schemeS3, Bucket: bucket, Key: key}, nil

	case strings.HasPrefix(raw, "minio://"):
		endpoint, rest, _ := strings.Cut(strings.TrimPrefix(raw, "minio://"), "/")
		bucket, key, _ := strings.Cut(rest, "/")
		if endpoint == "" || bucket == "" || key == "" {
			return source{}, fmt.Errorf("invalid minio source %q: want minio://endpoint/bucket/key", raw)
		}
		return source{Scheme: schemeMinio, Endpoint: endpoint, Bucket: bucket, Key: key}, nil

	default:
		if raw == "" {
			return source{}, fmt.Errorf("empty source")
		}
		return source{Scheme: schemeFile, Key: raw}, nil
	}
}

// openStore returns the blob store that serves src.Key.
func openStore(ctx context.Context, src source) (blobstore.BlobStore, error) {
	switch src.Scheme {
	case schemeS3:
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return blobs3.NewStore(s3.NewFromConfig(cfg), src.Bucket, ""), nil

	case schemeMinio:
		client, err := minio.New(src.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: os.Getenv("MINIO_SECURE") == "true",
		})
		if err != nil {
			return nil, fmt.Errorf("create minio client: %w", err)
		}
		return blobminio.NewStore(client, src.Bucket, ""), nil

	default:
		return blobstore.NewLocalStore(""), nil
	}
}
