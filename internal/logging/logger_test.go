package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestNewWithoutFileIsNop(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	logger.Info("dropped")
}

func TestNewWritesJSONWithSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "psb.log")
	logger, err := New(Options{File: path, Level: "info"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("catalog loaded")
	_ = logger.Sync()

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "catalog loaded", lines[0]["msg"])
	assert.Equal(t, "info", lines[0]["level"])

	_, err = uuid.Parse(lines[0]["session"].(string))
	assert.NoError(t, err)
}

func TestVerboseForcesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psb.log")
	logger, err := New(Options{File: path, Level: "error", Verbose: true})
	require.NoError(t, err)

	logger.Debug("shown")
	_ = logger.Sync()
	assert.Len(t, readLines(t, path), 1)
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "psb.log"), Level: "loud"})
	assert.Error(t, err)
}
