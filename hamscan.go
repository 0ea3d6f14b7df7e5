package hamscan

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/hupe1980/hamscan/aggregate"
	"github.com/hupe1980/hamscan/blobstore"
	"github.com/hupe1980/hamscan/dataset"
	"github.com/hupe1980/hamscan/distance"
	"github.com/hupe1980/hamscan/partition"
	"github.com/hupe1980/hamscan/progress"
	"github.com/hupe1980/hamscan/resource"
)

// fingerprintBytes is the memory a loaded fingerprint occupies.
const fingerprintBytes = 8

// Scanner finds all pairs of fingerprints within a Hamming distance
// threshold. A Scanner is immutable and safe for concurrent use.
type Scanner struct {
	maxDistance int
	dist        distance.Func
	opts        options
}

// New creates a Scanner that reports pairs with a distance of at most
// maxDistance.
func New(maxDistance int, optFns ...Option) (*Scanner, error) {
	if maxDistance < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxDistance, maxDistance)
	}

	o := applyOptions(optFns)
	if o.workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, o.workers)
	}
	if o.reportInterval == 0 || bits.OnesCount64(o.reportInterval) != 1 {
		return nil, fmt.Errorf("%w: %d", progress.ErrInterval, o.reportInterval)
	}
	if o.bucketWidth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBucketWidth, o.bucketWidth)
	}

	dist, err := distance.Provider(o.kernel)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("scanner created",
		"max_distance", maxDistance,
		"workers", o.workers,
		"mode", o.mode.String(),
		"kernel", distance.Resolve(o.kernel).String(),
		"hardware_popcount", distance.HasHardwarePopcount(),
	)

	return &Scanner{
		maxDistance: maxDistance,
		dist:        dist,
		opts:        o,
	}, nil
}

// MaxDistance returns the distance threshold.
func (s *Scanner) MaxDistance() int {
	return s.maxDistance
}

// Load reads a data set from the named blob. Open and read failures are
// returned as *ErrIO, malformed lines as *dataset.ErrParse.
//
// With a resource controller, the growing data set is reserved against the
// memory limit while loading and released when Load returns.
func (s *Scanner) Load(ctx context.Context, store blobstore.BlobStore, name string) (dataset.DataSet, *dataset.Report, error) {
	r := s.opts.resources.NewReservation()
	defer r.Release()

	return s.load(ctx, store, name, r)
}

func (s *Scanner) load(ctx context.Context, store blobstore.BlobStore, name string, r *resource.Reservation) (dataset.DataSet, *dataset.Report, error) {
	start := s.opts.now()
	logger := s.opts.logger.WithSource(name)

	rc, err := blobstore.OpenReader(ctx, store, name)
	if err != nil {
		err = &ErrIO{Source: name, cause: err}
		s.opts.metricsCollector.RecordLoad(0, 0, s.opts.now().Sub(start), err)
		logger.LogLoad(ctx, nil, nil, err)
		return nil, nil, err
	}
	defer rc.Close()

	var reserveErr error
	ds, report, err := dataset.Load(resource.NewRateLimitedReader(ctx, rc, s.opts.resources),
		dataset.WithStrict(s.opts.strict),
		dataset.WithWarningHandler(func(w dataset.RoundTripWarning) {
			logger.LogRoundTrip(ctx, w)
		}),
		dataset.WithReserve(func(elements int) error {
			reserveErr = r.Grow(ctx, int64(elements)*fingerprintBytes)
			return reserveErr
		}),
	)
	warnings := 0
	if report != nil {
		warnings = report.Warnings
	}
	if err != nil && reserveErr == nil && !isDataError(err) {
		err = &ErrIO{Source: name, cause: err}
	}
	s.opts.metricsCollector.RecordLoad(len(ds), warnings, s.opts.now().Sub(start), err)
	logger.LogLoad(ctx, ds, report, err)
	if err != nil {
		return nil, report, err
	}
	return ds, report, nil
}

// ScanSource loads the named blob and scans it. The memory reserved while
// loading is held until the scan finishes.
func (s *Scanner) ScanSource(ctx context.Context, store blobstore.BlobStore, name string) (*Result, error) {
	res := s.opts.resources
	if err := res.AcquireScan(ctx); err != nil {
		return nil, err
	}
	defer res.ReleaseScan()

	r := res.NewReservation()
	defer r.Release()

	ds, _, err := s.load(ctx, store, name, r)
	if err != nil {
		return nil, err
	}

	return s.scan(ctx, ds)
}

// Scan compares every planned pair of ds and aggregates the pairs within
// the distance threshold. An empty data set is not an error: the returned
// result has Skipped set.
func (s *Scanner) Scan(ctx context.Context, ds dataset.DataSet) (*Result, error) {
	if err := s.opts.resources.AcquireScan(ctx); err != nil {
		return nil, err
	}
	defer s.opts.resources.ReleaseScan()

	return s.scan(ctx, ds)
}

func (s *Scanner) scan(ctx context.Context, ds dataset.DataSet) (*Result, error) {
	start := s.opts.now()
	logger := s.opts.logger

	if ds.Len() == 0 {
		logger.LogEmptyDataSet(ctx)
		s.opts.metricsCollector.RecordScan(0, 0, 0, nil)
		return &Result{
			MaxDistance: s.maxDistance,
			Mode:        s.opts.mode,
			Workers:     s.opts.workers,
			Histogram:   aggregate.NewHistogram(),
			Skipped:     true,
		}, nil
	}

	plan, err := partition.New(ds.Len(), s.opts.workers, s.opts.mode)
	if err != nil {
		return nil, err
	}
	if len(plan.Dropped) > 0 {
		logger.WarnContext(ctx, "elements excluded from comparison",
			"mode", plan.Mode.String(),
			"dropped", len(plan.Dropped),
			"first_dropped", plan.Dropped[0],
		)
	}

	aggs := make([]*aggregate.Aggregator, len(plan.Jobs))
	parts := make([]PartitionResult, len(plan.Jobs))

	err = plan.Run(ctx, func(ctx context.Context, job partition.Job) error {
		agg, pr, err := s.scanJob(ctx, ds, job)
		aggs[job.Worker] = agg
		parts[job.Worker] = pr
		logger.LogWorker(ctx, pr, err)
		return err
	})

	var processed uint64
	for _, p := range parts {
		processed += p.Processed
	}
	if err != nil {
		s.opts.metricsCollector.RecordScan(processed, 0, s.opts.now().Sub(start), err)
		return nil, err
	}

	// Worker order keeps adjacency keys in lexicographic order for ModeFull.
	merged := aggregate.New(s.opts.adjacency)
	for _, agg := range aggs {
		merged.Merge(agg)
	}

	r := &Result{
		MaxDistance: s.maxDistance,
		Mode:        plan.Mode,
		Workers:     len(plan.Jobs),
		Elements:    ds.Len(),
		Total:       plan.Total(),
		Pairs:       processed,
		Matches:     merged.Matches(),
		Histogram:   merged.Histogram(),
		Adjacency:   merged.Adjacency(),
		Covered:     plan.Covered(),
		Dropped:     plan.Dropped,
		Partitions:  parts,
		Elapsed:     s.opts.now().Sub(start),
	}

	s.opts.metricsCollector.RecordScan(r.Pairs, r.Matches, r.Elapsed, nil)
	logger.LogSummary(ctx, r)
	return r, nil
}

func (s *Scanner) scanJob(ctx context.Context, ds dataset.DataSet, job partition.Job) (*aggregate.Aggregator, PartitionResult, error) {
	start := s.opts.now()
	agg := aggregate.New(s.opts.adjacency)
	pr := PartitionResult{
		Worker: job.Worker,
		Start:  job.Start,
		End:    job.End,
		From:   job.From,
		To:     job.To,
		Pairs:  job.Total(),
	}

	logger := s.opts.logger.WithWorker(job.Worker)
	rep, err := progress.New(progress.Config{
		Worker:      job.Worker,
		Total:       job.Total(),
		Interval:    s.opts.reportInterval,
		BucketWidth: s.opts.bucketWidth,
		MinInterval: s.opts.reportMinInterval,
		Now:         s.opts.now,
	}, progress.SinkFunc(func(snap progress.Snapshot) {
		logger.LogProgress(ctx, snap)
		s.opts.metricsCollector.RecordProgress(snap.Worker, snap.Processed, snap.Total)
	}))
	if err != nil {
		return agg, pr, err
	}

	maxDistance := s.maxDistance
	dist := s.dist

	var processed uint64
	for i, j := range job.Pairs() {
		a, b := ds[i], ds[j]
		if d := dist(uint64(a), uint64(b), maxDistance); d <= maxDistance {
			agg.Observe(a, b, d)
		}
		processed++

		if rep.Due(processed) {
			if err := ctx.Err(); err != nil {
				pr.Processed = processed
				pr.Matches = agg.Matches()
				pr.Elapsed = s.opts.now().Sub(start)
				return agg, pr, err
			}
			rep.Tick(processed, agg.Histogram())
		}
	}

	pr.Processed = processed
	pr.Matches = agg.Matches()
	pr.Elapsed = s.opts.now().Sub(start)
	return agg, pr, nil
}

func isDataError(err error) bool {
	var pe *dataset.ErrParse
	var rt *dataset.ErrRoundTrip
	return errors.As(err, &pe) || errors.As(err, &rt)
}
