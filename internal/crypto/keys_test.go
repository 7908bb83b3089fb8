package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateLocalKey_CreatesAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.key")

	// Первый вызов создает файл
	key1, err := LoadOrCreateLocalKey(path)
	require.NoError(t, err)
	assert.Len(t, key1, KeySize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Повторный вызов деривирует тот же ключ
	key2, err := LoadOrCreateLocalKey(path)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}

func TestLoadOrCreateLocalKey_DistinctFilesDistinctKeys(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrCreateLocalKey(filepath.Join(dir, "a.key"))
	require.NoError(t, err)
	key2, err := LoadOrCreateLocalKey(filepath.Join(dir, "b.key"))
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestLoadOrCreateLocalKey_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.key")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := LoadOrCreateLocalKey(path)
	assert.Error(t, err)
}
