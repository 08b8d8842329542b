package guarded

import (
	"testing"

	"github.com/stretchr/testify/require"

	"guarded/dispatch"
)

func TestWriteDoesNotWaitForMutation(t *testing.T) {
	c := NewSerialQueueCellAsync(10)
	defer c.Close()

	gate := make(chan struct{})
	require.NoError(t, c.Write(func(v *int) {
		<-gate
		*v += 5
	}))
	// The mutation is parked on gate, so the old value is still visible.
	require.Equal(t, 10, c.Get())

	close(gate)
	c.Wait()
	require.Equal(t, 15, c.Get())
}

func TestWritesRunInSubmissionOrder(t *testing.T) {
	var seen []int
	c := NewSerialQueueCellAsync(0, WithObserver(func(before, after int) {
		seen = append(seen, after)
	}))
	defer c.Close()

	for i := 1; i <= 50; i++ {
		i := i
		require.NoError(t, c.Write(func(v *int) { *v = i }))
	}
	c.Wait()

	require.Len(t, seen, 50)
	for i, v := range seen {
		require.Equal(t, i+1, v)
	}
}

func TestHammerAsyncIsEventuallyExact(t *testing.T) {
	for _, workers := range []int{2, 10} {
		c := NewSerialQueueCellAsync(10)
		final, err := HammerAsync(c, workers, 10, nil)
		require.NoError(t, err)
		require.Equal(t, 10+workers*10, final)
		c.Close()
	}
}

func TestCloseRunsPendingWrites(t *testing.T) {
	c := NewSerialQueueCellAsync(0)
	for i := 0; i < 100; i++ {
		require.NoError(t, c.Write(func(v *int) { *v++ }))
	}
	c.Close()
	require.Equal(t, 100, c.Get())

	require.ErrorIs(t, c.Write(func(v *int) { *v++ }), dispatch.ErrQueueClosed)
	require.Equal(t, 100, c.Get())
}

func TestPanickingWriteKeepsCellUsable(t *testing.T) {
	c := NewSerialQueueCellAsync(1)
	defer c.Close()

	require.NoError(t, c.Write(func(v *int) { panic("boom") }))
	require.NoError(t, c.Write(func(v *int) { *v++ }))
	c.Wait()
	require.Equal(t, 2, c.Get())
}
