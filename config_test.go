package guarded

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	bytes, err := json.Marshal(G)
	require.NoError(t, err)
	Log.Info(string(bytes))
}

func TestLoadConfig(t *testing.T) {
	defer func() { G = DefaultConfig() }()

	name := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(name, []byte(`{"playground":{"workers":10,"variants":["mutex"]}}`), 0o644))

	require.NoError(t, LoadConfig(name))
	require.Equal(t, 10, G.Playground.Workers)
	require.Equal(t, []string{"mutex"}, G.Playground.Variants)
	require.Equal(t, 4, G.Queue.ConcurrentWidth)

	require.Error(t, LoadConfig(filepath.Join(t.TempDir(), "missing.json")))
}
