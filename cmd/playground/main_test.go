package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"guarded"
)

func TestSelectVariants(t *testing.T) {
	all, err := selectVariants(nil)
	require.NoError(t, err)
	require.Equal(t, guarded.Variants(), all)

	some, err := selectVariants([]string{"mutex", "rw-queue"})
	require.NoError(t, err)
	require.Equal(t, []guarded.Variant{guarded.Mutex, guarded.RWQueue}, some)

	_, err = selectVariants([]string{"mutex", "nope"})
	require.ErrorIs(t, err, guarded.ErrUnknownVariant)
}
