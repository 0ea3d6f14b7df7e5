// Package resource shares memory, concurrency and read bandwidth budgets
// between scans.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimit is returned when a single reservation exceeds the hard
// memory limit and could never be satisfied.
var ErrMemoryLimit = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for data sets held by running scans.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentScans is the maximum number of scans running at once.
	// If 0, scans are not limited.
	MaxConcurrentScans int64

	// ReadBytesPerSec is the maximum input read throughput.
	// If 0, unlimited.
	ReadBytesPerSec int64
}

// Controller manages resources shared by scanners.
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Concurrency
	scanSem *semaphore.Weighted // nil if unlimited

	// IO
	readLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.MaxConcurrentScans > 0 {
		c.scanSem = semaphore.NewWeighted(cfg.MaxConcurrentScans)
	}
	if cfg.ReadBytesPerSec > 0 {
		c.readLimiter = rate.NewLimiter(rate.Limit(cfg.ReadBytesPerSec), int(cfg.ReadBytesPerSec))
	}

	return c
}

// AcquireMemory reserves bytes. If a hard limit is configured and usage
// would exceed it, this blocks until memory is available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if bytes > c.cfg.MemoryLimitBytes {
			return fmt.Errorf("%w: need %d bytes, limit is %d", ErrMemoryLimit, bytes, c.cfg.MemoryLimitBytes)
		}
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory reserves bytes without blocking.
// Returns true if acquired, false if limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return false
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current reserved memory in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireScan reserves a scan slot. Blocks if all slots are busy.
func (c *Controller) AcquireScan(ctx context.Context) error {
	if c == nil || c.scanSem == nil {
		return nil
	}
	return c.scanSem.Acquire(ctx, 1)
}

// TryAcquireScan reserves a scan slot without blocking.
func (c *Controller) TryAcquireScan() bool {
	if c == nil || c.scanSem == nil {
		return true
	}
	return c.scanSem.TryAcquire(1)
}

// ReleaseScan releases a scan slot.
func (c *Controller) ReleaseScan() {
	if c == nil || c.scanSem == nil {
		return
	}
	c.scanSem.Release(1)
}

// AcquireRead waits until the read limit allows the specified number of bytes.
func (c *Controller) AcquireRead(ctx context.Context, bytes int) error {
	if c == nil || c.readLimiter == nil {
		return nil
	}
	return c.readLimiter.WaitN(ctx, bytes)
}

// readChunk is the largest read a single limiter wait may cover.
func (c *Controller) readChunk() int {
	if c == nil || c.readLimiter == nil {
		return 0
	}
	return c.readLimiter.Burst()
}

// Reservation tracks memory reserved in steps by one owner.
// It is not safe for concurrent use.
type Reservation struct {
	c    *Controller
	held int64
}

// NewReservation returns an empty reservation against c.
func (c *Controller) NewReservation() *Reservation {
	return &Reservation{c: c}
}

// Grow reserves bytes more. It fails with ErrMemoryLimit when the total held
// by r would exceed the hard limit, since waiting could never succeed.
func (r *Reservation) Grow(ctx context.Context, bytes int64) error {
	c := r.c
	if c != nil && c.memSem != nil && r.held+bytes > c.cfg.MemoryLimitBytes {
		return fmt.Errorf("%w: need %d bytes, limit is %d", ErrMemoryLimit, r.held+bytes, c.cfg.MemoryLimitBytes)
	}
	if err := c.AcquireMemory(ctx, bytes); err != nil {
		return err
	}
	if bytes > 0 {
		r.held += bytes
	}
	return nil
}

// Held returns the number of bytes reserved.
func (r *Reservation) Held() int64 {
	return r.held
}

// Release returns everything r holds.
func (r *Reservation) Release() {
	r.c.ReleaseMemory(r.held)
	r.held = 0
}
