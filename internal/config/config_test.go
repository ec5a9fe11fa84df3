package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"REVTRAIL_COLOR", "REVTRAIL_CONTEXT", "REVTRAIL_FORMAT", "REVTRAIL_WIDTH", "REVTRAIL_EAST_ASIAN_WIDTH", "REVTRAIL_LOG_FILE", "REVTRAIL_LOG_LEVEL"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}})
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Color:   ColorAuto,
		Context: 3,
		Format:  "numbered",
		Width:   0,
		Log:     Log{Level: "info"},
	}, cfg)
}

func TestLoad_SearchedFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := "color: never\ncontext: 1\nformat: Unified\nlog:\n  file: /tmp/revtrail.log\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "revtrail.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(LoadOptions{SearchPaths: []string{t.TempDir(), dir}})
	require.NoError(t, err)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, 1, cfg.Context)
	assert.Equal(t, "unified", cfg.Format)
	assert.Equal(t, "/tmp/revtrail.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("context: 1\nwidth: 40\nformat: pretty\n"), 0o644))

	t.Setenv("REVTRAIL_CONTEXT", "5")
	t.Setenv("REVTRAIL_LOG_LEVEL", "warn")
	t.Setenv("REVTRAIL_FORMAT", "html")

	cfg, err := Load(LoadOptions{
		ConfigFile: path,
		Overrides:  map[string]any{KeyFormat: "dump"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Context) // env over file
	assert.Equal(t, 40, cfg.Width)  // file over default
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "dump", cfg.Format) // override over env
}

func TestLoad_EastAsianWidth(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "revtrail.yaml"), []byte("east_asian_width: true\n"), 0o644))

	cfg, err := Load(LoadOptions{SearchPaths: []string{dir}})
	require.NoError(t, err)
	assert.True(t, cfg.EastAsianWidth)

	t.Setenv("REVTRAIL_EAST_ASIAN_WIDTH", "false")
	cfg, err = Load(LoadOptions{SearchPaths: []string{dir}})
	require.NoError(t, err)
	assert.False(t, cfg.EastAsianWidth)

	cfg, err = Load(LoadOptions{SearchPaths: []string{dir}, Overrides: map[string]any{KeyEastAsianWidth: true}})
	require.NoError(t, err)
	assert.True(t, cfg.EastAsianWidth)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("explicit file missing", func(t *testing.T) {
		_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "revtrail.yaml"), []byte("color: [unclosed\n"), 0o644))
		_, err := Load(LoadOptions{SearchPaths: []string{dir}})
		assert.Error(t, err)
	})

	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{name: "bad color", overrides: map[string]any{KeyColor: "sometimes"}},
		{name: "negative context", overrides: map[string]any{KeyContext: -1}},
		{name: "bad format", overrides: map[string]any{KeyFormat: "xml"}},
		{name: "negative width", overrides: map[string]any{KeyWidth: -5}},
		{name: "bad level", overrides: map[string]any{KeyLogLevel: "loud"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}, Overrides: tc.overrides})
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestUseColorAndWidth(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, (&Config{Color: ColorAlways}).UseColor(f.Fd()))
	assert.False(t, (&Config{Color: ColorNever}).UseColor(f.Fd()))
	assert.False(t, (&Config{Color: ColorAuto}).UseColor(f.Fd())) // not a terminal

	assert.Equal(t, 40, (&Config{Width: 40}).OutputWidth(f.Fd()))
	assert.Equal(t, FallbackWidth, (&Config{}).OutputWidth(f.Fd()))
}
