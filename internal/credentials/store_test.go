package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		credDir := filepath.Join(tmpDir, "creds")

		store, err := NewStore(credDir)
		require.NoError(t, err)
		assert.NotNil(t, store)

		info, err := os.Stat(credDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})
}

func TestStore_SaveLoad(t *testing.T) {
	t.Run("round-trips the token", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save("abc123"))

		token, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("token file is private", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Save("abc123"))

		info, err := os.Stat(filepath.Join(tmpDir, "token"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("a new login overwrites, never appends", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save("first"))
		require.NoError(t, store.Save("second"))

		token, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "second", token)
	})

	t.Run("empty store yields ErrNoCredential", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Load()
		assert.ErrorIs(t, err, ErrNoCredential)
	})

	t.Run("refuses an empty token", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		assert.Error(t, store.Save(""))
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Save("abc123"))

		_, err = os.Stat(filepath.Join(tmpDir, "token.tmp"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestStore_Clear(t *testing.T) {
	t.Run("removes the token", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save("abc123"))
		require.NoError(t, store.Clear())

		_, err = store.Load()
		assert.ErrorIs(t, err, ErrNoCredential)
	})

	t.Run("clearing an empty store is not an error", func(t *testing.T) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)

		assert.NoError(t, store.Clear())
		assert.NoError(t, store.Clear())
	})
}
