package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockFileStorage is a mock implementation of storage.FileStorage.
type mockFileStorage struct {
	signedKey   string
	contentType string
	deletedKey  string
	err         error
}

func (m *mockFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.signedKey = objectKey
	m.contentType = contentType
	return "https://bucket.example.com/" + objectKey + "?signature=abc", nil
}

func (m *mockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://bucket.example.com/" + objectKey, nil
}

func (m *mockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	m.deletedKey = objectKey
	return m.err
}

func TestUploadService_SignImageUpload(t *testing.T) {
	fileStorage := &mockFileStorage{}
	svc := NewUploadService(fileStorage, zap.NewNop())

	signed, err := svc.SignImageUpload(context.Background(), "", "image/png")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed.Key, "courses/"))
	assert.True(t, strings.HasSuffix(signed.Key, ".png"))
	assert.Equal(t, signed.Key, fileStorage.signedKey)
	assert.Equal(t, "image/png", fileStorage.contentType)
	assert.Contains(t, signed.URL, signed.Key)
	assert.True(t, signed.ExpiresAt.After(time.Now()))
}

func TestUploadService_SignImageUpload_CustomFolder(t *testing.T) {
	fileStorage := &mockFileStorage{}
	svc := NewUploadService(fileStorage, zap.NewNop())

	signed, err := svc.SignImageUpload(context.Background(), "/banners/", "image/jpeg")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed.Key, "banners/"))
	assert.True(t, strings.HasSuffix(signed.Key, ".jpg"))
}

func TestUploadService_SignImageUpload_KeysAreUnique(t *testing.T) {
	svc := NewUploadService(&mockFileStorage{}, zap.NewNop())

	first, err := svc.SignImageUpload(context.Background(), "", "image/webp")
	assert.NoError(t, err)
	second, err := svc.SignImageUpload(context.Background(), "", "image/webp")
	assert.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestUploadService_SignImageUpload_UnsupportedType(t *testing.T) {
	svc := NewUploadService(&mockFileStorage{}, zap.NewNop())

	for _, contentType := range []string{"application/pdf", "text/html", "video/mp4", ""} {
		_, err := svc.SignImageUpload(context.Background(), "", contentType)
		assert.ErrorIs(t, err, ErrUnsupportedImageType, contentType)
	}
}

func TestUploadService_DeleteImage(t *testing.T) {
	fileStorage := &mockFileStorage{}
	svc := NewUploadService(fileStorage, zap.NewNop())

	err := svc.DeleteImage(context.Background(), "/courses/cover.png/")

	assert.NoError(t, err)
	assert.Equal(t, "courses/cover.png", fileStorage.deletedKey)
}

func TestUploadService_DeleteImage_EmptyKey(t *testing.T) {
	svc := NewUploadService(&mockFileStorage{}, zap.NewNop())

	err := svc.DeleteImage(context.Background(), "   ")

	assert.Error(t, err)
}
