package main

import (
	"context"
	"testing"

	"github.com/hupe1980/hamscan/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		raw     string
		want    source
		wantErr bool
	}{
		{raw: "hashes.txt", want: source{Scheme: schemeFile, Key: "hashes.txt"}},
		{raw: "/data/hashes.txt.gz", want: source{Scheme: schemeFile, Key: "/data/hashes.txt.gz"}},
		{raw: "s3://bucket/dir/hashes.txt", want: source{Scheme: schemeS3, Bucket: "bucket", Key: "dir/hashes.txt"}},
		{raw: "minio://localhost:9000/bucket/hashes.txt", want: source{Scheme: schemeMinio, Endpoint: "localhost:9000", Bucket: "bucket", Key: "hashes.txt"}},
		{raw: "s3://bucket", wantErr: true},
		{raw: "s3:///key", wantErr: true},
		{raw: "minio://localhost:9000/bucket", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseSource(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.raw, got.String())
		})
	}
}

func TestOpenStoreLocal(t *testing.T) {
	store, err := openStore(context.Background(), source{Scheme: schemeFile, Key: "x"})
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, store)
}
