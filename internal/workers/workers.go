package workers

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool is a semaphore-backed [Executor] allowing at most size concurrent
// calls to run.
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

// NewPool returns a pool with size slots. Values below 1 are raised to 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
}

// Do blocks until a slot is free, runs fn on the caller's goroutine and
// returns its error.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)

	return fn()
}

// Size returns the number of slots.
func (p *Pool) Size() int {
	return int(p.size)
}
