package guarded

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerLevel(t *testing.T) {
	defer func() {
		G = DefaultConfig()
		InitLoggerForTest()
	}()

	G.Log.Level = "warn"
	InitLogger()
	require.False(t, Log.Core().Enabled(zapcore.InfoLevel))
	require.True(t, Log.Core().Enabled(zapcore.WarnLevel))

	G.Log.Level = "loud"
	InitLogger()
	require.True(t, Log.Core().Enabled(zapcore.DebugLevel))

	G.Log.Level = "error"
	G.Log.Async = true
	InitLogger()
	require.False(t, Log.Core().Enabled(zapcore.WarnLevel))
}

func TestNamedLogger(t *testing.T) {
	require.Equal(t, "guarded.rw", Named("guarded.rw").Name())
}
