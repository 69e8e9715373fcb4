package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLogOutputTeesIntoFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	out, closeLog, err := OpenLogOutput(&console, dir, 3)
	require.NoError(t, err)
	_, err = io.WriteString(out, "hello\n")
	require.NoError(t, err)
	require.NoError(t, closeLog())

	files, err := filepath.Glob(filepath.Join(dir, logFilePrefix+"*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
	assert.Equal(t, "hello\n", console.String())
}

func TestOpenLogOutputKeepsMaxFiles(t *testing.T) {
	dir := t.TempDir()
	old := []string{
		"threadline-20260101T000000.000.log",
		"threadline-20260102T000000.000.log",
		"threadline-20260103T000000.000.log",
	}
	for _, name := range old {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), nil, 0o644))

	_, closeLog, err := OpenLogOutput(io.Discard, dir, 2)
	require.NoError(t, err)
	require.NoError(t, closeLog())

	files, err := filepath.Glob(filepath.Join(dir, logFilePrefix+"*.log"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, old[2]), files[0])
	assert.FileExists(t, filepath.Join(dir, "other.log"))
}

func TestPruneLogsNonPositiveKeep(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "threadline-20260101T000000.000.log"), nil, 0o644))

	require.NoError(t, pruneLogs(dir, -1))

	files, err := filepath.Glob(filepath.Join(dir, logFilePrefix+"*.log"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, false).Debug("hidden")
	assert.Zero(t, buf.Len())

	NewLogger(&buf, true).Debug("shown", "path", "/A")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "/A", entry["path"])
}
