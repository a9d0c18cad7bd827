package storage

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/omikunle/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(&config.Config{
		StorageDisk:      "local",
		StorageLocalRoot: t.TempDir(),
		StorageURL:       "http://localhost/uploads",
	})
	require.NoError(t, err)
	return m
}

func TestLocalDiskRoundTrip(t *testing.T) {
	disk := newTestManager(t).Disk()

	require.NoError(t, disk.Put("products/a/1.jpg", []byte("jpeg bytes")))
	assert.True(t, disk.Exists("products/a/1.jpg"))

	data, err := disk.Get("products/a/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)

	require.NoError(t, disk.Delete("products/a/1.jpg"))
	assert.False(t, disk.Exists("products/a/1.jpg"))
}

func TestLocalDiskStream(t *testing.T) {
	disk := newTestManager(t).Disk()

	require.NoError(t, disk.PutStream("x/y.bin", bytes.NewReader([]byte{1, 2, 3})))

	rc, err := disk.GetStream("x/y.bin")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestLocalDiskURL(t *testing.T) {
	disk := newTestManager(t).Disk()
	assert.Equal(t, "http://localhost/uploads/products/a/1.jpg", disk.URL("products/a/1.jpg"))
}

func TestDeleteMissingFileIsNil(t *testing.T) {
	disk := newTestManager(t).Disk()
	assert.NoError(t, disk.Delete("never/was/here.txt"))
}

func TestManagerUnknownDisk(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Use("s3")
	assert.Error(t, err)

	d, err := m.Use("local")
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestDefaultDiskMustExist(t *testing.T) {
	_, err := NewManager(&config.Config{StorageDisk: "s3"})
	assert.Error(t, err)
}
