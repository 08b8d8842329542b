package guarded

import (
	"guarded/dispatch"
)

// SerialQueueCell runs every access as a job on its own serial queue and
// waits for the job to finish. No caller ever touches the value directly.
type SerialQueueCell[T any] struct {
	queue *dispatch.Queue
	v     T
	opts  options[T]
}

func newQueue(label string, attr dispatch.Attribute, width int) *dispatch.Queue {
	q, err := dispatch.NewQueue(label, attr, dispatch.WithWidth(width), dispatch.WithLogger(Named(label)))
	if err != nil {
		panic(err)
	}
	return q
}

func NewSerialQueueCell[T any](v T, opts ...Option[T]) *SerialQueueCell[T] {
	o := loadOptions(opts)
	return &SerialQueueCell[T]{
		queue: newQueue("guarded.serial", dispatch.Serial, o.width),
		v:     v,
		opts:  o,
	}
}

// Get returns the zero value if the cell is closed.
func (c *SerialQueueCell[T]) Get() T {
	var v T
	_ = c.queue.Sync(func() {
		v = c.v
	})
	return v
}

// Set is a no-op on a closed cell.
func (c *SerialQueueCell[T]) Set(v T) {
	_ = c.queue.Sync(func() {
		c.v = v
	})
}

// Modify returns dispatch.ErrQueueClosed after Close and a
// *dispatch.PanicError if f panicked.
func (c *SerialQueueCell[T]) Modify(f func(v *T) error) error {
	var ferr error
	if err := c.queue.Sync(func() {
		ferr = c.opts.apply(&c.v, f)
	}); err != nil {
		return err
	}
	return ferr
}

func (c *SerialQueueCell[T]) Close() {
	c.queue.Close()
}

var _ Cell[int] = (*SerialQueueCell[int])(nil)
