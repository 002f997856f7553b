package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	t.Run("creates the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes")

		require.NoError(t, writeAtomic(path, "Groceries:milk eggs bread", 0644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Groceries:milk eggs bread", string(got))
	})

	t.Run("replaces the previous value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes")
		require.NoError(t, os.WriteFile(path, []byte("a:b;c:d"), 0644))

		require.NoError(t, writeAtomic(path, "a:b", 0644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a:b", string(got))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "notes")

		for range 3 {
			require.NoError(t, writeAtomic(path, "x:y", 0644))
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "stray temp file %s", e.Name())
		}
		assert.Len(t, entries, 1)
	})

	t.Run("fails when the directory is missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "notes")
		assert.Error(t, writeAtomic(path, "x:y", 0644))
	})
}
