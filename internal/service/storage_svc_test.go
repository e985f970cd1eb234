package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy_erp/internal/config"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pdfHeader = []byte("%PDF-1.4\n%test\n")
)

func newLocalStorage(t *testing.T) (*StorageService, string) {
	t.Helper()
	dir := t.TempDir()
	svc, err := NewStorageService(config.StorageConfig{Provider: "local", BasePath: dir, BaseURL: "/uploads"})
	require.NoError(t, err)
	return svc, dir
}

func TestNewStorageService_InvalidProvider(t *testing.T) {
	_, err := NewStorageService(config.StorageConfig{Provider: "invalid"})
	assert.Error(t, err)
}

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	svc, dir := newLocalStorage(t)
	ctx := context.Background()

	obj, err := svc.UploadImage(ctx, pngHeader, FolderProducts, "Photo.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.Key, FolderProducts+"/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".png"), "保留小写扩展名")
	assert.Equal(t, "/uploads/"+obj.Key, obj.URL)
	assert.Equal(t, "image/png", obj.ContentType)

	full := filepath.Join(dir, filepath.FromSlash(obj.Key))
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(pngHeader, data))

	require.NoError(t, svc.Delete(ctx, obj.Key))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, svc.Delete(ctx, obj.Key), "重复删除不报错")
	assert.Error(t, svc.Delete(ctx, "../etc/passwd"))
}

func TestStorageService_Validation(t *testing.T) {
	svc, _ := newLocalStorage(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, nil, FolderAttachments, "a.txt", "")
	assert.True(t, errors.Is(err, ErrEmptyFile))

	_, err = svc.Upload(ctx, make([]byte, MaxUploadSize+1), FolderAttachments, "big.bin", "")
	assert.True(t, errors.Is(err, ErrFileTooLarge))

	_, err = svc.UploadImage(ctx, pdfHeader, FolderProducts, "scan.pdf")
	assert.True(t, errors.Is(err, ErrUnsupportedFile))

	obj, err := svc.UploadDocument(ctx, pdfHeader, FolderPrescriptions, "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", obj.ContentType)

	_, err = svc.UploadDocument(ctx, []byte("plain text"), FolderReceipts, "note.txt")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestStorageService_UploadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	svc, _ := newLocalStorage(t)
	ctx := context.Background()

	obj, err := svc.UploadFromURL(ctx, srv.URL+"/img/box.png?size=large", FolderProducts)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(obj.Key, ".png"))

	_, err = svc.UploadFromURL(ctx, srv.URL+"/missing.png", FolderProducts)
	assert.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	key := generateKey("pharmacy", FolderReceipts, "facture")
	parts := strings.Split(key, "/")
	require.Len(t, parts, 6)
	assert.Equal(t, "pharmacy", parts[0])
	assert.Equal(t, FolderReceipts, parts[1])
	assert.True(t, strings.HasSuffix(key, ".bin"), "无扩展名时使用 .bin")
}
