package guarded

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConcurrentPerformRunsEveryIteration(t *testing.T) {
	var hits [10]atomic.Int32
	require.NoError(t, ConcurrentPerform(len(hits), func(i int) {
		hits[i].Add(1)
	}))
	for i := range hits {
		require.Equal(t, int32(1), hits[i].Load(), "iteration %d", i)
	}

	require.NoError(t, ConcurrentPerform(0, func(int) { t.Fatal("called") }))
}

func TestConcurrentPerformIsParallel(t *testing.T) {
	const n = 4
	var arrived sync.WaitGroup
	arrived.Add(n)
	done := make(chan error, 1)
	go func() {
		done <- ConcurrentPerform(n, func(int) {
			arrived.Done()
			arrived.Wait()
		})
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("iterations did not run at the same time")
	}
}

func TestHammerTrace(t *testing.T) {
	var (
		mu     sync.Mutex
		counts = map[int]int{}
	)
	final, err := Hammer(NewMutexCell(10), 2, 10, func(worker, value int) {
		mu.Lock()
		counts[worker]++
		mu.Unlock()
		require.Greater(t, value, 10)
		require.LessOrEqual(t, value, 30)
	})
	require.NoError(t, err)
	require.Equal(t, 30, final)
	require.Equal(t, map[int]int{0: 10, 1: 10}, counts)
}

func TestHammerStopsOnClosedCell(t *testing.T) {
	c := NewSerialQueueCell(0)
	c.Close()
	_, err := Hammer(c, 2, 10, nil)
	require.Error(t, err)
}

func TestExposeRace(t *testing.T) {
	if raceEnabled {
		t.Skip("unsynchronized access is a data race by construction")
	}
	if runtime.GOMAXPROCS(0) < 2 {
		t.Skip("lost updates need goroutines running in parallel")
	}

	report, err := ExposeRace(8, 200000, 20)
	require.NoError(t, err)
	require.Equal(t, 8*200000, report.Expected)
	require.Greater(t, report.LostUpdates(), 0)
	require.GreaterOrEqual(t, report.Attempts, uint(1))
}
