package guarded

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// SemaphoreCell guards its value with a weighted semaphore of size 1.
// Acquire never times out.
type SemaphoreCell[T any] struct {
	sem  *semaphore.Weighted
	v    T
	opts options[T]
}

func NewSemaphoreCell[T any](v T, opts ...Option[T]) *SemaphoreCell[T] {
	return &SemaphoreCell[T]{
		sem:  semaphore.NewWeighted(1),
		v:    v,
		opts: loadOptions(opts),
	}
}

func (c *SemaphoreCell[T]) acquire() {
	// Background is never done, so Acquire cannot fail.
	_ = c.sem.Acquire(context.Background(), 1)
}

func (c *SemaphoreCell[T]) Get() T {
	c.acquire()
	defer c.sem.Release(1)
	return c.v
}

func (c *SemaphoreCell[T]) Set(v T) {
	c.acquire()
	c.v = v
	c.sem.Release(1)
}

func (c *SemaphoreCell[T]) Modify(f func(v *T) error) error {
	c.acquire()
	defer c.sem.Release(1)
	return c.opts.apply(&c.v, f)
}

var _ Cell[int] = (*SemaphoreCell[int])(nil)
