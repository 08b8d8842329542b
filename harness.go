package guarded

import (
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const releaseTimeout = 5 * time.Second

// Trace receives the value a worker read back after each of its increments.
type Trace func(worker, value int)

// ConcurrentPerform calls fn(0) .. fn(iterations-1) in parallel and returns
// once all of them have finished.
func ConcurrentPerform(iterations int, fn func(i int)) error {
	if iterations <= 0 {
		return nil
	}

	pool, err := ants.NewPool(iterations, ants.WithLogger(zap.NewStdLog(Named("perform"))))
	if err != nil {
		return fmt.Errorf("new worker pool: %w", err)
	}
	defer func() {
		if err := pool.ReleaseTimeout(releaseTimeout); err != nil {
			Log.Warn("release worker pool err", zap.Error(err))
		}
	}()

	wg := &sync.WaitGroup{}
	for i := 0; i < iterations; i++ {
		i := i
		wg.Add(1)
		err = pool.Submit(func() {
			defer wg.Done()
			fn(i)
		})
		if err != nil {
			wg.Done()
			Log.Error("submit worker err", zap.Int("worker", i), zap.Error(err))
			break
		}
	}
	wg.Wait()
	return err
}

func increment(v *int) error {
	*v++
	return nil
}

// Hammer has workers goroutines each increment c increments times, reading
// the value back after every increment. It returns the final value.
func Hammer(c Cell[int], workers, increments int, trace Trace) (int, error) {
	var (
		mu       sync.Mutex
		firstErr error
	)
	err := ConcurrentPerform(workers, func(worker int) {
		for n := 0; n < increments; n++ {
			if err := c.Modify(increment); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("worker %d increment %d: %w", worker, n, err)
				}
				mu.Unlock()
				return
			}
			if trace != nil {
				trace(worker, c.Get())
			}
		}
	})
	if err != nil {
		return 0, err
	}
	if firstErr != nil {
		return 0, firstErr
	}
	return c.Get(), nil
}

// HammerAsync is Hammer for a cell whose writes are fire-and-forget. The
// trace sees values as the writes run, and the final value is read after
// the queue has drained.
func HammerAsync(c *SerialQueueCellAsync[int], workers, increments int, trace Trace) (int, error) {
	var (
		mu       sync.Mutex
		firstErr error
	)
	err := ConcurrentPerform(workers, func(worker int) {
		for n := 0; n < increments; n++ {
			err := c.Write(func(v *int) {
				*v++
				if trace != nil {
					trace(worker, *v)
				}
			})
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("worker %d write %d: %w", worker, n, err)
				}
				mu.Unlock()
				return
			}
		}
	})
	if err != nil {
		return 0, err
	}
	if firstErr != nil {
		return 0, firstErr
	}
	c.Wait()
	return c.Get(), nil
}
