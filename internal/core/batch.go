// ABOUTME: Batch scheduler runs independent operations in fixed-size groups
// ABOUTME: Concurrency exists only within a group; groups are paced by a delay
package core

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Scheduler fans n independent operations out under some pacing policy.
// op is invoked once per index in [0, n); implementations decide how
// many run concurrently. Results stay ordered because each op writes to
// its own index. A token-bucket or leaky-bucket implementation can be
// swapped in without touching callers.
type Scheduler interface {
	Run(ctx context.Context, n int, op func(ctx context.Context, i int) error) error
}

// BatchScheduler processes operations in contiguous groups of Size,
// waiting for every operation in a group to settle before starting the
// next group, and sleeping Delay between consecutive groups (not after
// the last one). This bounds in-flight requests to the external
// capability to Size, trading latency for rate-limit compliance.
type BatchScheduler struct {
	Size  int
	Delay time.Duration
}

// NewBatchScheduler creates a scheduler with the given group size and
// inter-group delay. A non-positive size is treated as 1.
func NewBatchScheduler(size int, delay time.Duration) *BatchScheduler {
	if size <= 0 {
		size = 1
	}
	return &BatchScheduler{Size: size, Delay: delay}
}

// Run executes op for every index in [0, n). If any operation in a
// group fails, operations already started in that group still settle,
// no further groups are started, and the first error is returned.
func (s *BatchScheduler) Run(ctx context.Context, n int, op func(ctx context.Context, i int) error) error {
	size := s.Size
	if size <= 0 {
		size = 1
	}

	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				return op(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if end < n && s.Delay > 0 {
			timer := time.NewTimer(s.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return nil
}

// RunBatched maps op over items through the scheduler, preserving input
// order in the result slice regardless of per-item completion order.
// On error no partial results are returned.
func RunBatched[T, R any](ctx context.Context, sched Scheduler, items []T, op func(ctx context.Context, item T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	err := sched.Run(ctx, len(items), func(ctx context.Context, i int) error {
		r, err := op(ctx, items[i])
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
