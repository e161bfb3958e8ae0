package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/intake"
	"stockroom/internal/storage"
)

func TestLocalStoreUpload(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStore(dir, "/media/")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "main", intake.File{
		Key: "image", Filename: "Front.PNG", ContentType: "image/png", Data: []byte("png-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/products/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/media/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStoreExtensionFromContentType(t *testing.T) {
	s, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "", intake.File{Filename: "blob", ContentType: "image/jpeg", Data: []byte{1}})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)

	_, err = s.Upload(context.Background(), "", intake.File{Filename: "x.svg", ContentType: "image/svg+xml", Data: []byte{1}})
	assert.Error(t, err)
}

func TestLocalStoreHonoursCancellation(t *testing.T) {
	s, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Upload(ctx, "", intake.File{Filename: "a.png", Data: []byte{1}})
	assert.ErrorIs(t, err, context.Canceled)
}
