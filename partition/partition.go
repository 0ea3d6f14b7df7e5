package partition

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/bits"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hamscan/combination"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidWorkers is returned when the worker count is not positive.
var ErrInvalidWorkers = errors.New("worker count must be positive")

// Mode selects how the pair space is divided.
type Mode int

const (
	// ModeFull covers every pair.
	ModeFull Mode = iota
	// ModeWithin only compares elements inside the same slice.
	ModeWithin
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeWithin:
		return "within"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ParseMode parses "full" or "within".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return ModeFull, nil
	case "within":
		return ModeWithin, nil
	default:
		return ModeFull, fmt.Errorf("unknown partition mode %q", s)
	}
}

// Job is the unit of work of one worker.
type Job struct {
	Worker int
	// Start and End bound the element slice of a ModeWithin job.
	Start, End int
	// From and To bound the pair ranks of a ModeFull job.
	From, To uint64

	mode Mode
	n    int
}

// Total returns the number of pairs the job scans.
func (j Job) Total() uint64 {
	if j.mode == ModeWithin {
		return combination.Count(j.End - j.Start)
	}
	return j.To - j.From
}

// Pairs yields the job's pairs as global element indices, in lexicographic
// order.
func (j Job) Pairs() iter.Seq2[int, int] {
	if j.mode == ModeFull {
		return combination.Range(j.n, j.From, j.To)
	}
	return func(yield func(int, int) bool) {
		for a, b := range combination.Pairs(j.End - j.Start) {
			if !yield(j.Start+a, j.Start+b) {
				return
			}
		}
	}
}

// Plan is the set of jobs for one scan.
type Plan struct {
	Mode Mode
	N    int
	Jobs []Job
	// Dropped lists element indices that take part in no job (ModeWithin).
	Dropped []int
}

// New plans a scan of n elements across workers jobs.
func New(n, workers int, mode Mode) (*Plan, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}

	p := &Plan{Mode: mode, N: n, Jobs: make([]Job, 0, workers)}

	switch mode {
	case ModeWithin:
		size := n / workers
		for w := range workers {
			p.Jobs = append(p.Jobs, Job{
				Worker: w,
				Start:  w * size,
				End:    (w + 1) * size,
				mode:   mode,
				n:      n,
			})
		}
		for i := workers * size; i < n; i++ {
			p.Dropped = append(p.Dropped, i)
		}
	case ModeFull:
		total := combination.Count(n)
		for w := range workers {
			p.Jobs = append(p.Jobs, Job{
				Worker: w,
				From:   splitPoint(total, w, workers),
				To:     splitPoint(total, w+1, workers),
				mode:   mode,
				n:      n,
			})
		}
	default:
		return nil, fmt.Errorf("unknown partition mode %v", mode)
	}

	return p, nil
}

// splitPoint returns total*k/w without overflowing.
func splitPoint(total uint64, k, w int) uint64 {
	hi, lo := bits.Mul64(total, uint64(k))
	q, _ := bits.Div64(hi, lo, uint64(w))
	return q
}

// Total returns the number of pairs across all jobs.
func (p *Plan) Total() uint64 {
	var total uint64
	for _, j := range p.Jobs {
		total += j.Total()
	}
	return total
}

// Covered returns the element indices that take part in at least one
// comparison.
func (p *Plan) Covered() *roaring.Bitmap {
	bm := roaring.New()
	for _, j := range p.Jobs {
		if j.Total() == 0 {
			continue
		}
		if j.mode == ModeWithin {
			bm.AddRange(uint64(j.Start), uint64(j.End))
			continue
		}

		i0, j0 := combination.Unrank(j.From, j.n)
		i1, j1 := combination.Unrank(j.To-1, j.n)
		bm.Add(uint32(i0))
		if i0 == i1 {
			bm.AddRange(uint64(j0), uint64(j1)+1)
			continue
		}
		bm.AddRange(uint64(j0), uint64(j.n))
		if i1 > i0+1 {
			bm.AddRange(uint64(i0)+1, uint64(j.n))
		}
		bm.AddRange(uint64(i1), uint64(j1)+1)
	}
	return bm
}

// Run executes fn for every job concurrently and waits for all of them.
// The first error cancels the context passed to the remaining jobs.
func (p *Plan) Run(ctx context.Context, fn func(ctx context.Context, job Job) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, job := range p.Jobs {
		g.Go(func() error {
			return fn(gctx, job)
		})
	}
	return g.Wait()
}
