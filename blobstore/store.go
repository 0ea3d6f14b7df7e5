package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for reading immutable input blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	// ReadAt reads len(p) bytes starting at offset off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
	io.Closer
}

// Fetcher is an optional interface for stores that can read a whole blob
// more efficiently than through sequential ReadAt calls.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Mappable is an optional interface for Blobs that support memory mapping.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// readChunkSize is the ReadAt size used by sequential readers.
const readChunkSize = 1 << 20

// NewReader returns a sequential reader over b.
func NewReader(ctx context.Context, b Blob) io.Reader {
	return &blobReader{ctx: ctx, blob: b}
}

type blobReader struct {
	ctx  context.Context
	blob Blob
	off  int64
}

func (r *blobReader) Read(p []byte) (int, error) {
	size := r.blob.Size()
	if r.off >= size {
		return 0, io.EOF
	}
	if len(p) > readChunkSize {
		p = p[:readChunkSize]
	}
	if rem := size - r.off; int64(len(p)) > rem {
		p = p[:rem]
	}

	n, err := r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

// OpenReader opens name for sequential reading. Stores implementing Fetcher
// are read in one request; mappable blobs are read without copying.
func OpenReader(ctx context.Context, s BlobStore, name string) (io.ReadCloser, error) {
	if f, ok := s.(Fetcher); ok {
		data, err := f.Fetch(ctx, name)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	if m, ok := b.(Mappable); ok {
		if data, err := m.Bytes(); err == nil {
			return &readCloser{Reader: bytes.NewReader(data), close: b.Close}, nil
		}
	}

	return &readCloser{Reader: NewReader(ctx, b), close: b.Close}, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}
