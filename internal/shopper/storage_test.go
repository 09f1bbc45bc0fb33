package shopper

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageRoundTrip(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	data, err := storage.Read("cart")
	require.NoError(t, err)
	assert.Nil(t, data, "an unwritten key reads as nil")

	require.NoError(t, storage.Write("cart", []byte(`[{"productId":"prod-1"}]`)))

	data, err = storage.Read("cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"productId":"prod-1"}]`), data)
}

func TestFileStorageCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles", "default")
	_, err := NewFileStorage(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestFileStorageKeysAreIndependent(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Write("cart", []byte(`[]`)))
	require.NoError(t, storage.Write("favorites", []byte(`["prod-1"]`)))

	cart, err := storage.Read("cart")
	require.NoError(t, err)
	favorites, err := storage.Read("favorites")
	require.NoError(t, err)

	assert.Equal(t, []byte(`[]`), cart)
	assert.Equal(t, []byte(`["prod-1"]`), favorites)
}

func TestMemoryStorageCopiesValues(t *testing.T) {
	storage := NewMemoryStorage()

	payload := []byte(`["prod-1"]`)
	require.NoError(t, storage.Write("favorites", payload))
	payload[0] = 'X'

	data, err := storage.Read("favorites")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["prod-1"]`), data)
}
