package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/yoga"
	"github.com/fwojciec/yoga/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestSources(t *testing.T) {
	t.Parallel()

	t.Run("default pattern finds videos recursively in order", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "b.mp4"))
		touch(t, filepath.Join(dir, "a.webm"))
		touch(t, filepath.Join(dir, "week2", "flow.mkv"))
		touch(t, filepath.Join(dir, "notes.txt"))

		got, err := fs.Sources(dir, "")
		require.NoError(t, err)
		assert.Equal(t, []yoga.Source{
			yoga.Source(filepath.Join(dir, "a.webm")),
			yoga.Source(filepath.Join(dir, "b.mp4")),
			yoga.Source(filepath.Join(dir, "week2", "flow.mkv")),
		}, got)
	})

	t.Run("custom pattern", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "a.mp4"))
		touch(t, filepath.Join(dir, "sub", "b.mp4"))

		got, err := fs.Sources(dir, "*.mp4")
		require.NoError(t, err)
		assert.Equal(t, []yoga.Source{yoga.Source(filepath.Join(dir, "a.mp4"))}, got)
	})

	t.Run("directories never match", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "clip.mp4"), 0o755))

		got, err := fs.Sources(dir, "")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Sources(t.TempDir(), "[")
		assert.ErrorIs(t, err, yoga.ErrValidation)
	})

	t.Run("root is a file", func(t *testing.T) {
		t.Parallel()
		file := filepath.Join(t.TempDir(), "a.mp4")
		touch(t, file)
		_, err := fs.Sources(file, "")
		assert.ErrorIs(t, err, yoga.ErrValidation)
	})

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()
		_, err := fs.Sources(filepath.Join(t.TempDir(), "nope"), "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
