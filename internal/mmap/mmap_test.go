package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("Roundtrip", func(t *testing.T) {
		content := []byte("the quick brown fox jumps over the lazy dog")
		path := filepath.Join(t.TempDir(), "data.bin")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		m, err := Open(path)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, content, m.Data)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.bin")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		m, err := Open(path)
		require.NoError(t, err)
		defer m.Close()

		assert.Nil(t, m.Data)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.bin"))
		require.Error(t, err)
	})
}

func TestReadAt(t *testing.T) {
	content := []byte("0123456789")
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	buf := make([]byte, 4)
	n, err := m.ReadAt(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("3456"), buf)

	n, err = m.ReadAt(buf, 8)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)

	_, err = m.ReadAt(buf, 100)
	assert.ErrorIs(t, err, io.EOF)
}

func TestClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o600))

	m, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Data)

	// Closing again is a no-op.
	require.NoError(t, m.Close())
}
