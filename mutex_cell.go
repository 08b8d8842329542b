package guarded

import "sync"

type MutexCell[T any] struct {
	mu   sync.Mutex
	v    T
	opts options[T]
}

func NewMutexCell[T any](v T, opts ...Option[T]) *MutexCell[T] {
	return &MutexCell[T]{v: v, opts: loadOptions(opts)}
}

func (c *MutexCell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *MutexCell[T]) Set(val T) {
	c.mu.Lock()
	c.v = val
	c.mu.Unlock()
}

func (c *MutexCell[T]) Modify(f func(v *T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts.apply(&c.v, f)
}

var _ Cell[int] = (*MutexCell[int])(nil)
