package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phyloflow.log")

	logger, closeFn, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug("grid filled")
	logger.Info("tree built")
	require.NoError(t, closeFn())
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"grid filled"`)
	assert.Contains(t, string(data), `"msg":"tree built"`)
}

func TestNewLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phyloflow.log")

	logger, closeFn, err := New(Config{Level: "WARN", File: path})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNewRejectsLevel(t *testing.T) {
	_, _, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
}
