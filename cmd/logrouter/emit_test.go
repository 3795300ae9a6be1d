package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logging.json")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0644))

	t.Run("emits the requested records", func(t *testing.T) {
		stdout, stderr, err := executeCommand(t, "emit", path,
			"--channel", "observer", "--level", "WARNING", "--message", "probe", "--count", "2")
		require.NoError(t, err)
		assert.Empty(t, stderr)

		assert.Equal(t, 2, strings.Count(stdout, "WARNING observer: probe correlation_id="))
		assert.Contains(t, stdout, " seq=1\n")
		assert.Contains(t, stdout, " seq=2\n")
		assert.Contains(t, stdout, "emitted 2 records on observer at WARNING: 2 sink writes, 0 failures\n")
	})

	t.Run("records below the channel threshold are dropped", func(t *testing.T) {
		stdout, stderr, err := executeCommand(t, "emit", path,
			"--channel", "observer", "--level", "DEBUG")
		require.NoError(t, err)
		assert.Empty(t, stderr)
		assert.NotContains(t, stdout, "routing check")
		assert.Contains(t, stdout, "emitted 1 records on observer at DEBUG: 0 sink writes, 0 failures\n")
	})

	t.Run("defaults to the root channel", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "emit", path, "--level", "ERROR")
		require.NoError(t, err)
		assert.Contains(t, stdout, "emitted 1 records on root at ERROR")
	})

	t.Run("rejects an unknown level", func(t *testing.T) {
		_, stderr, err := executeCommand(t, "emit", path, "--level", "LOUD")
		require.Error(t, err)
		assert.Contains(t, stderr, `unknown level "LOUD"`)
	})

	t.Run("rejects a non-positive count", func(t *testing.T) {
		_, stderr, err := executeCommand(t, "emit", path, "--count", "0")
		require.Error(t, err)
		assert.Contains(t, stderr, "count must be at least 1")
	})
}

func TestEmitCommandConsoleOnCommandStreams(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logging.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	  "version": 1,
	  "formatters": {"plain": {"format": "%(levelname)s %(name)s: %(message)s"}},
	  "handlers": {"console": {"class": "console", "formatter": "plain", "stream": "ext://sys.stderr"}},
	  "loggers": {"observer": {"level": "INFO", "handlers": ["console"], "propagate": 0}}
	}`), 0644))

	stdout, stderr, err := executeCommand(t, "emit", path,
		"--channel", "observer", "--message", "streamed")
	require.NoError(t, err)

	assert.Contains(t, stderr, "INFO observer: streamed correlation_id=")
	assert.NotContains(t, stdout, "INFO observer: streamed")
	assert.Contains(t, stdout, "emitted 1 records on observer at INFO: 1 sink writes, 0 failures\n")
}
