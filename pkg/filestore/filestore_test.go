package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"tugas/pkg/filestore"

	"github.com/stretchr/testify/assert"
)

func TestDiskStoreSaveAndRemove(t *testing.T) {
	store, err := filestore.NewDiskStore(t.TempDir())
	assert.NoError(t, err)

	data := []byte("image-bytes")
	path, err := store.Save(data, "photo.JPG")
	assert.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(path))

	stored, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, data, stored)
	assert.Equal(t, "image/jpeg", filestore.ContentType(path))

	// Two saves of the same original name never collide.
	other, err := store.Save(data, "photo.JPG")
	assert.NoError(t, err)
	assert.NotEqual(t, path, other)

	assert.NoError(t, store.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Removing an already-removed file is not an error.
	assert.NoError(t, store.Remove(path))
}

func TestDiskStoreRejectsUnsupportedTypes(t *testing.T) {
	store, err := filestore.NewDiskStore(t.TempDir())
	assert.NoError(t, err)

	for _, name := range []string{"malware.exe", "doc.pdf", "noext"} {
		_, err := store.Save([]byte("x"), name)
		assert.ErrorIs(t, err, filestore.ErrUnsupportedType)
	}
}
