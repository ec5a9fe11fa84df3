package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revtrail.log")

	log, done := New(path, "info")
	log.Infow("loaded history", "revisions", 3)
	log.Debugw("hidden")
	done()

	log, done = New(path, "debug")
	log.Debugw("shown")
	done()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "loaded history", first["msg"])
	assert.EqualValues(t, 3, first["revisions"])
	assert.Contains(t, first, "ts")

	assert.Contains(t, lines[1], `"msg":"shown"`)
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revtrail.log")

	log, done := New(path, "loud")
	log.Debugw("hidden")
	log.Warnw("kept")
	done()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hidden")
	assert.Contains(t, string(b), "kept")
}

func TestNew_NoOpWhenUnset(t *testing.T) {
	log, done := New("", "debug")
	log.Infow("should not panic")
	done()
}

func TestNew_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()

	log, done := New(dir, "info")
	log.Infow("ignored")
	done()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
