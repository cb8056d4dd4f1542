package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/send"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesFile(t *testing.T) {
	defer func() { _ = grip.SetSender(send.MakeNative()) }()

	path := filepath.Join(t.TempDir(), "logs", "bench.txt")
	require.NoError(t, Setup("render-bench-test", "info", path))

	grip.Info(message.Fields{"message": "configuration complete", "triangles": 42})
	grip.Debug("below threshold")
	require.NoError(t, grip.GetSender().Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "configuration complete")
	assert.Contains(t, string(data), "triangles='42'")
	assert.NotContains(t, string(data), "below threshold")
}

func TestSetupConsoleOnly(t *testing.T) {
	defer func() { _ = grip.SetSender(send.MakeNative()) }()

	require.NoError(t, Setup("render-bench-test", "debug", ""))
	assert.Equal(t, "render-bench-test", grip.GetSender().Name())
}
