package guarded

import (
	"sync"

	"guarded/dispatch"
)

// SerialQueueCellAsync accepts mutations without waiting for them. Writes
// run one at a time in submission order, but Get is not ordered against
// writes that are still queued: right after Write it may return either the
// old or the new value. Call Wait to observe every earlier write.
type SerialQueueCellAsync[T any] struct {
	queue *dispatch.Queue
	// mu only keeps Get from reading a half-written value. It is never held
	// while a mutation runs.
	mu   sync.Mutex
	v    T
	opts options[T]
}

func NewSerialQueueCellAsync[T any](v T, opts ...Option[T]) *SerialQueueCellAsync[T] {
	o := loadOptions(opts)
	return &SerialQueueCellAsync[T]{
		queue: newQueue("guarded.serial-async", dispatch.Serial, o.width),
		v:     v,
		opts:  o,
	}
}

func (c *SerialQueueCellAsync[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

// Write queues mutation and returns at once. It fails only with
// dispatch.ErrQueueClosed.
func (c *SerialQueueCellAsync[T]) Write(mutation func(v *T)) error {
	return c.queue.Async(func() {
		// Only the queue writes c.v, so the copy cannot go stale.
		v := c.Get()
		_ = c.opts.apply(&v, func(v *T) error {
			mutation(v)
			return nil
		})
		c.mu.Lock()
		c.v = v
		c.mu.Unlock()
	})
}

// Wait blocks until all writes submitted before it have run.
func (c *SerialQueueCellAsync[T]) Wait() {
	c.queue.Wait()
}

// Close runs the writes still queued, then stops the queue. Later writes
// are rejected.
func (c *SerialQueueCellAsync[T]) Close() {
	c.queue.Close()
}
