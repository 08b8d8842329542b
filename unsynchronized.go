package guarded

// UnsynchronizedCell does no synchronization at all. Concurrent Modify calls
// interleave their read-modify-write sequences and lose updates.
type UnsynchronizedCell[T any] struct {
	v    T
	opts options[T]
}

func NewUnsynchronizedCell[T any](v T, opts ...Option[T]) *UnsynchronizedCell[T] {
	return &UnsynchronizedCell[T]{v: v, opts: loadOptions(opts)}
}

func (c *UnsynchronizedCell[T]) Get() T {
	return c.v
}

func (c *UnsynchronizedCell[T]) Set(v T) {
	c.v = v
}

func (c *UnsynchronizedCell[T]) Modify(f func(v *T) error) error {
	v := c.Get()
	if err := c.opts.apply(&v, f); err != nil {
		return err
	}
	c.Set(v)
	return nil
}

var _ Cell[int] = (*UnsynchronizedCell[int])(nil)
