package partition

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hupe1980/hamscan/combination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(job Job) [][2]int {
	var out [][2]int
	for i, j := range job.Pairs() {
		out = append(out, [2]int{i, j})
	}
	return out
}

func TestWithinDropsRemainder(t *testing.T) {
	p, err := New(10, 3, ModeWithin)
	require.NoError(t, err)

	require.Len(t, p.Jobs, 3)
	for w, job := range p.Jobs {
		assert.Equal(t, 3, job.End-job.Start, "worker %d", w)
		assert.Equal(t, uint64(3), job.Total())
	}
	assert.Equal(t, []int{9}, p.Dropped)
	assert.Equal(t, uint64(9), p.Total())

	// The dropped element is in zero comparisons.
	for _, job := range p.Jobs {
		for _, pair := range collect(job) {
			assert.NotContains(t, pair, 9)
			assert.Equal(t, pair[0]/3, pair[1]/3, "pairs stay within their slice")
		}
	}
	assert.False(t, p.Covered().Contains(9))
	assert.Equal(t, uint64(9), p.Covered().GetCardinality())
}

func TestWithinMoreWorkersThanElements(t *testing.T) {
	p, err := New(2, 4, ModeWithin)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), p.Total())
	assert.Equal(t, []int{0, 1}, p.Dropped)
	assert.True(t, p.Covered().IsEmpty())
}

func TestFullCoversEveryPair(t *testing.T) {
	for _, tc := range []struct{ n, w int }{{10, 3}, {7, 1}, {5, 8}, {64, 6}, {1, 2}, {0, 3}} {
		p, err := New(tc.n, tc.w, ModeFull)
		require.NoError(t, err)
		require.Len(t, p.Jobs, tc.w)
		assert.Empty(t, p.Dropped)
		assert.Equal(t, combination.Count(tc.n), p.Total())

		var got [][2]int
		for _, job := range p.Jobs {
			got = append(got, collect(job)...)
		}

		var want [][2]int
		for i, j := range combination.Pairs(tc.n) {
			want = append(want, [2]int{i, j})
		}
		assert.Equal(t, want, got, "n=%d w=%d", tc.n, tc.w)

		if tc.n >= 2 {
			assert.Equal(t, uint64(tc.n), p.Covered().GetCardinality())
		}
	}
}

func TestFullCoveredPerJob(t *testing.T) {
	p, err := New(12, 5, ModeFull)
	require.NoError(t, err)

	for _, job := range p.Jobs {
		single := &Plan{Mode: ModeFull, N: 12, Jobs: []Job{job}}
		seen := map[uint32]bool{}
		for _, pair := range collect(job) {
			seen[uint32(pair[0])] = true
			seen[uint32(pair[1])] = true
		}

		bm := single.Covered()
		assert.Equal(t, uint64(len(seen)), bm.GetCardinality(), "worker %d", job.Worker)
		for idx := range seen {
			assert.True(t, bm.Contains(idx))
		}
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(10, 0, ModeFull)
	assert.ErrorIs(t, err, ErrInvalidWorkers)

	_, err = New(10, 2, Mode(7))
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("within")
	require.NoError(t, err)
	assert.Equal(t, ModeWithin, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeFull, m)

	_, err = ParseMode("sharded")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	p, err := New(100, 4, ModeFull)
	require.NoError(t, err)

	var mu sync.Mutex
	workers := map[int]uint64{}
	err = p.Run(context.Background(), func(_ context.Context, job Job) error {
		mu.Lock()
		defer mu.Unlock()
		workers[job.Worker] = job.Total()
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, workers, 4)

	boom := errors.New("boom")
	err = p.Run(context.Background(), func(ctx context.Context, job Job) error {
		if job.Worker == 2 {
			return boom
		}
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, boom)
}
