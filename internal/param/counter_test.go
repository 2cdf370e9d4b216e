package param

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCounterToSaveDirectory(t *testing.T) {
	dir := t.TempDir()
	counterPath := filepath.Join(dir, "counter")

	t.Run("creates the counter file on first use", func(t *testing.T) {
		s := mustParse(t, "saveDirectory out/run\n")

		require.NoError(t, AddCounterToSaveDirectory(s, counterPath))

		got, err := s.GetString("saveDirectory")
		require.NoError(t, err)
		assert.Equal(t, "out/run-1", got)

		data, err := os.ReadFile(counterPath)
		require.NoError(t, err)
		assert.Equal(t, "1", strings.TrimSpace(string(data)))
	})

	t.Run("increments on every later run", func(t *testing.T) {
		s := mustParse(t, "saveDirectory out/run\n")

		require.NoError(t, AddCounterToSaveDirectory(s, counterPath))

		got, err := s.GetString("saveDirectory")
		require.NoError(t, err)
		assert.Equal(t, "out/run-2", got)
	})

	t.Run("empty counter file counts as zero", func(t *testing.T) {
		emptyPath := filepath.Join(dir, "empty-counter")
		require.NoError(t, os.WriteFile(emptyPath, []byte("\n"), 0o600))
		s := mustParse(t, "saveDirectory out/run\n")

		require.NoError(t, AddCounterToSaveDirectory(s, emptyPath))

		got, err := s.GetString("saveDirectory")
		require.NoError(t, err)
		assert.Equal(t, "out/run-1", got)
	})

	t.Run("garbage counter file is an error", func(t *testing.T) {
		badPath := filepath.Join(dir, "bad-counter")
		require.NoError(t, os.WriteFile(badPath, []byte("not a number"), 0o600))
		s := mustParse(t, "saveDirectory out/run\n")

		err := AddCounterToSaveDirectory(s, badPath)
		require.Error(t, err)
		assert.ErrorContains(t, err, "does not hold a number")
	})

	t.Run("missing saveDirectory parameter is an error", func(t *testing.T) {
		s := mustParse(t, "size 128\n")
		err := AddCounterToSaveDirectory(s, filepath.Join(dir, "another-counter"))
		assert.ErrorIs(t, err, ErrNoMatch)
	})
}
