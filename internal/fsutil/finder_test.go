package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindParamFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for _, name := range []string{"b.par", "a.par", "notes.txt", filepath.Join("nested", "c.par")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("size 1\n"), 0o600))
	}

	t.Run("directory walk is recursive, filtered and sorted", func(t *testing.T) {
		files, err := FindParamFiles(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.par"),
			filepath.Join(dir, "b.par"),
			filepath.Join(sub, "c.par"),
		}, files)
	})

	t.Run("a plain file is returned as-is", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		files, err := FindParamFiles(path)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
	})

	t.Run("missing path is an error", func(t *testing.T) {
		_, err := FindParamFiles(filepath.Join(dir, "absent"))
		require.Error(t, err)
	})
}
