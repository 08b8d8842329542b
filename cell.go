package guarded

// Cell owns one value of type T and decides how concurrent access to it is
// synchronized.
type Cell[T any] interface {
	Get() T
	Set(v T)
	// Modify runs f against the stored value in place. Whatever primitive
	// guards the cell is released before Modify returns, even if f fails.
	Modify(f func(v *T) error) error
}

// Update is Modify for closures that also produce a result.
func Update[T, R any](c Cell[T], f func(v *T) (R, error)) (R, error) {
	var res R
	err := c.Modify(func(v *T) error {
		var err error
		res, err = f(v)
		return err
	})
	return res, err
}

// Observer sees every successful mutation while the cell is still guarded.
type Observer[T any] func(before, after T)

type options[T any] struct {
	observer Observer[T]
	width    int
}

type Option[T any] func(o *options[T])

func WithObserver[T any](observer Observer[T]) Option[T] {
	return func(o *options[T]) {
		o.observer = observer
	}
}

// WithWidth bounds how many reads an RWQueueCell runs at once. Other cells
// ignore it.
func WithWidth[T any](width int) Option[T] {
	return func(o *options[T]) {
		o.width = width
	}
}

func loadOptions[T any](opts []Option[T]) options[T] {
	var o options[T]
	if G.Queue != nil {
		o.width = G.Queue.ConcurrentWidth
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// apply runs f on v and reports the change to the observer. The caller must
// hold the cell's primitive.
func (o *options[T]) apply(v *T, f func(v *T) error) error {
	before := *v
	if err := f(v); err != nil {
		return err
	}
	if o.observer != nil {
		o.observer(before, *v)
	}
	return nil
}
