package dispatch

import (
	"container/list"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

type Attribute int

const (
	// Serial queues run one job at a time in submission order.
	Serial Attribute = iota
	// Concurrent queues run normal jobs in parallel; barrier jobs run alone.
	Concurrent
)

func (a Attribute) String() string {
	switch a {
	case Serial:
		return "serial"
	case Concurrent:
		return "concurrent"
	}
	return fmt.Sprintf("Attribute(%d)", int(a))
}

var ErrQueueClosed = errors.New("dispatch queue closed")

// PanicError is returned from Sync and BarrierSync when the job panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("dispatch job panicked: %v", e.Value)
}

const (
	defaultWidth   = 4
	releaseTimeout = 5 * time.Second
)

type Option func(q *Queue)

// WithWidth sets how many jobs a concurrent queue runs at once.
func WithWidth(width int) Option {
	return func(q *Queue) {
		if width > 0 {
			q.width = width
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(q *Queue) {
		if log != nil {
			q.log = log
		}
	}
}

type job struct {
	fn      func()
	barrier bool
	done    chan error
}

func (j *job) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	j.fn()
	return nil
}

// Queue dispatches submitted jobs from a single goroutine in FIFO order.
type Queue struct {
	attr  Attribute
	width int
	log   *zap.Logger
	pool  *ants.Pool

	mu       sync.Mutex
	cond     *sync.Cond
	pending  *list.List
	closed   bool
	inflight sync.WaitGroup
	stopped  chan struct{}
}

func NewQueue(label string, attr Attribute, opts ...Option) (*Queue, error) {
	q := &Queue{
		attr:    attr,
		width:   defaultWidth,
		log:     zap.NewNop(),
		pending: list.New(),
		stopped: make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}
	q.log = q.log.With(zap.String("queue", label), zap.Stringer("attr", attr))

	if attr == Concurrent {
		pool, err := ants.NewPool(q.width, ants.WithLogger(zap.NewStdLog(q.log)))
		if err != nil {
			return nil, fmt.Errorf("new pool for queue %q: %w", label, err)
		}
		q.pool = pool
	}

	go q.loop()
	return q, nil
}

// Len returns the number of jobs waiting to be dispatched.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Len()
}

func (q *Queue) submit(j *job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.pending.PushBack(j)
	q.cond.Signal()
	return nil
}

func (q *Queue) next() (*job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.pending.Len() == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.pending.Len() == 0 {
		return nil, false
	}
	front := q.pending.Front()
	q.pending.Remove(front)
	return front.Value.(*job), true
}

func (q *Queue) loop() {
	defer close(q.stopped)
	for {
		j, ok := q.next()
		if !ok {
			break
		}
		if q.attr == Serial || j.barrier {
			q.inflight.Wait()
			q.finish(j, j.run())
			continue
		}

		q.inflight.Add(1)
		err := q.pool.Submit(func() {
			defer q.inflight.Done()
			q.finish(j, j.run())
		})
		if err != nil {
			q.inflight.Done()
			q.log.Error("pool submit err, running inline", zap.Error(err))
			q.finish(j, j.run())
		}
	}
	q.inflight.Wait()
	q.log.Debug("dispatcher stopped")
}

func (q *Queue) finish(j *job, err error) {
	if j.done != nil {
		j.done <- err
		return
	}
	if err != nil {
		var pe *PanicError
		if errors.As(err, &pe) {
			q.log.Error("async job panicked", zap.Any("panic", pe.Value), zap.ByteString("stack", pe.Stack))
			return
		}
		q.log.Error("async job failed", zap.Error(err))
	}
}

func (q *Queue) Async(fn func()) error {
	return q.submit(&job{fn: fn})
}

func (q *Queue) Sync(fn func()) error {
	return q.wait(&job{fn: fn, done: make(chan error, 1)})
}

func (q *Queue) BarrierAsync(fn func()) error {
	return q.submit(&job{fn: fn, barrier: true})
}

func (q *Queue) BarrierSync(fn func()) error {
	return q.wait(&job{fn: fn, barrier: true, done: make(chan error, 1)})
}

func (q *Queue) wait(j *job) error {
	if err := q.submit(j); err != nil {
		return err
	}
	return <-j.done
}

// Wait blocks until every job submitted before the call has completed.
// On a closed queue it waits for the dispatcher to stop.
func (q *Queue) Wait() {
	if err := q.BarrierSync(func() {}); errors.Is(err, ErrQueueClosed) {
		<-q.stopped
	}
}

// Close rejects new jobs, runs the ones already queued and releases the
// dispatcher and pool. Calling Close more than once is safe.
func (q *Queue) Close() {
	q.mu.Lock()
	already := q.closed
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()

	<-q.stopped
	if already || q.pool == nil {
		return
	}
	if err := q.pool.ReleaseTimeout(releaseTimeout); err != nil {
		q.log.Warn("release pool err", zap.Error(err))
	}
}
