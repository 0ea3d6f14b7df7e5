package resource

import (
	"context"
	"io"
)

// RateLimitedReader wraps an io.Reader with the controller's read limit.
type RateLimitedReader struct {
	r   io.Reader
	rc  *Controller
	ctx context.Context
}

// NewRateLimitedReader creates a new RateLimitedReader. Without a read
// limit it returns r unchanged.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) io.Reader {
	if rc.readChunk() == 0 {
		return r
	}
	return &RateLimitedReader{
		r:   r,
		rc:  rc,
		ctx: ctx,
	}
}

func (r *RateLimitedReader) Read(p []byte) (int, error) {
	// WaitN rejects requests larger than the burst.
	if chunk := r.rc.readChunk(); len(p) > chunk {
		p = p[:chunk]
	}
	if err := r.rc.AcquireRead(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
