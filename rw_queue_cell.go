package guarded

import (
	"guarded/dispatch"
)

// RWQueueCell reads on a concurrent queue and writes as barrier jobs on the
// same queue, so reads overlap each other but never a write.
type RWQueueCell[T any] struct {
	queue *dispatch.Queue
	v     T
	opts  options[T]
}

func NewRWQueueCell[T any](v T, opts ...Option[T]) *RWQueueCell[T] {
	o := loadOptions(opts)
	return &RWQueueCell[T]{
		queue: newQueue("guarded.rw", dispatch.Concurrent, o.width),
		v:     v,
		opts:  o,
	}
}

// Read runs f against the current value alongside other reads. f must not
// keep the value past its return if T holds references.
func (c *RWQueueCell[T]) Read(f func(v T)) error {
	return c.queue.Sync(func() {
		f(c.v)
	})
}

// Get returns the zero value if the cell is closed.
func (c *RWQueueCell[T]) Get() T {
	var v T
	_ = c.Read(func(cur T) {
		v = cur
	})
	return v
}

func (c *RWQueueCell[T]) Set(v T) {
	_ = c.queue.BarrierSync(func() {
		c.v = v
	})
}

func (c *RWQueueCell[T]) Modify(f func(v *T) error) error {
	var ferr error
	if err := c.queue.BarrierSync(func() {
		ferr = c.opts.apply(&c.v, f)
	}); err != nil {
		return err
	}
	return ferr
}

func (c *RWQueueCell[T]) Close() {
	c.queue.Close()
}

var _ Cell[int] = (*RWQueueCell[int])(nil)
