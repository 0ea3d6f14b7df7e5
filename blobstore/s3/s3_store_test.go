package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/hamscan/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func object(data string) *s3.GetObjectOutput {
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
		ContentRange:  aws.String(fmt.Sprintf("bytes 0-%d/%d", len(data)-1, len(data))),
	}
}

func TestStore_Open(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix")

	t.Run("NotFound", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(func(input *s3.HeadObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "prefix/missing.txt"
		})).Return(nil, &types.NotFound{}).Once()

		_, err := store.Open(context.Background(), "missing.txt")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("ReadAt", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.MatchedBy(func(input *s3.HeadObjectInput) bool {
			return *input.Key == "prefix/hashes.txt"
		})).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(10)}, nil).Once()

		mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
			return *input.Key == "prefix/hashes.txt" && *input.Range == "bytes=6-9"
		})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("100\n"))}, nil).Once()

		blob, err := store.Open(context.Background(), "hashes.txt")
		require.NoError(t, err)
		assert.Equal(t, int64(10), blob.Size())

		buf := make([]byte, 8)
		n, err := blob.ReadAt(context.Background(), buf, 6)
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "100\n", string(buf[:n]))

		_, err = blob.ReadAt(context.Background(), buf, 10)
		assert.Equal(t, io.EOF, err)
		require.NoError(t, blob.Close())
	})

	mockClient.AssertExpectations(t)
}

func TestStore_Fetch(t *testing.T) {
	const data = "ff\n0a\n100\n"

	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "", func(o *Options) {
		o.Concurrency = 1
	})

	mockClient.On("HeadObject", mock.Anything, mock.Anything).
		Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil).Once()
	mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "hashes.txt"
	})).Return(object(data), nil).Once()

	got, err := store.Fetch(context.Background(), "hashes.txt")
	require.NoError(t, err)
	assert.Equal(t, data, string(got))

	t.Run("OpenReaderPrefersFetch", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.Anything).
			Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil).Once()
		mockClient.On("GetObject", mock.Anything, mock.Anything).Return(object(data), nil).Once()

		rc, err := blobstore.OpenReader(context.Background(), store, "hashes.txt")
		require.NoError(t, err)
		defer rc.Close()

		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, data, string(b))
	})

	t.Run("Empty", func(t *testing.T) {
		mockClient.On("HeadObject", mock.Anything, mock.Anything).
			Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(0)}, nil).Once()

		b, err := store.Fetch(context.Background(), "empty.txt")
		require.NoError(t, err)
		assert.Empty(t, b)
	})

	mockClient.AssertExpectations(t)
}

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}
	key := os.Getenv("S3_KEY")
	if key == "" {
		t.Skip("Skipping S3 integration test: S3_KEY not set")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	store := NewStore(s3.NewFromConfig(cfg), bucket, "")
	data, err := store.Fetch(ctx, key)
	require.NoError(t, err)

	blob, err := store.Open(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())
}
