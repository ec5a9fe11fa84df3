package history

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centuriae/revtrail/internal/timeline"
)

const historyJSON = `[
  {"hash": "bbbb222", "date": "2024-03-05T10:00:00+01:00", "subject": "edit", "content": "x\nz\n", "filename": "post.md"},
  {"hash": "aaaa111", "date": "2024-03-01T09:30:00+01:00", "subject": "init", "content": "x\ny\n", "filename": "post.md"}
]`

const historyYAML = `
- hash: bbbb222
  date: "2024-03-05T10:00:00+01:00"
  subject: edit
  content: "x\nz\n"
- hash: aaaa111
  subject: init
  content: |
    x
    y
`

func TestDecode(t *testing.T) {
	want := []timeline.Revision{
		{ID: "bbbb222", Content: "x\nz\n", Subject: "edit", Timestamp: "2024-03-05T10:00:00+01:00"},
		{ID: "aaaa111", Content: "x\ny\n", Subject: "init", Timestamp: "2024-03-01T09:30:00+01:00"},
	}

	t.Run("json", func(t *testing.T) {
		revs, err := Decode(strings.NewReader(historyJSON), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, want, revs)
	})

	t.Run("yaml", func(t *testing.T) {
		revs, err := Decode(strings.NewReader(historyYAML), FormatYAML)
		require.NoError(t, err)
		wantYAML := append([]timeline.Revision(nil), want...)
		wantYAML[1].Timestamp = ""
		assert.Equal(t, wantYAML, revs)
	})

	t.Run("empty input", func(t *testing.T) {
		revs, err := Decode(strings.NewReader(""), FormatJSON)
		require.NoError(t, err)
		assert.Empty(t, revs)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`{"hash": 1}`), FormatJSON)
		assert.Error(t, err)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`[{"hash":"a","content":""},{"hash":"a","content":""}]`), FormatJSON)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := Decode(strings.NewReader(`[{"subject":"x","content":""}]`), FormatJSON)
		assert.ErrorIs(t, err, ErrEmptyID)
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	revs := []timeline.Revision{
		{ID: "2", Content: "<b>\n", Subject: "bold & brave", Timestamp: "2024-03-05"},
		{ID: "1", Content: "", Subject: "empty"},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, revs, "post.md"))
	assert.Contains(t, buf.String(), `"filename": "post.md"`)
	assert.Contains(t, buf.String(), `"content": "<b>\n"`)

	got, err := Decode(&buf, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, revs, got)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "history.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(historyJSON), 0o644))
	revs, err := ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Len(t, revs, 2)

	yamlPath := filepath.Join(dir, "history.YML")
	require.NoError(t, os.WriteFile(yamlPath, []byte(historyYAML), 0o644))
	revs, err = ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, revs, 2)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("h.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("h.yml"))
	assert.Equal(t, FormatJSON, FormatForPath("h.json"))
	assert.Equal(t, FormatJSON, FormatForPath("history"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]timeline.Revision{{ID: "a"}, {ID: "b"}}))
	assert.ErrorIs(t, Validate([]timeline.Revision{{ID: "a"}, {ID: "a"}}), ErrDuplicateID)
	assert.ErrorIs(t, Validate([]timeline.Revision{{ID: "a"}, {ID: ""}}), ErrEmptyID)
}
