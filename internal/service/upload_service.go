package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/storage"
)

// ErrUnsupportedImageType rejects uploads that are not browser-displayable
// images.
var ErrUnsupportedImageType = errors.New("unsupported image content type")

// Extensions per accepted image content type.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// SignedUpload is everything the admin UI needs to PUT an image straight to
// the bucket.
type SignedUpload struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadService signs direct-to-bucket image uploads for course covers.
type UploadService interface {
	SignImageUpload(ctx context.Context, folder, contentType string) (*SignedUpload, error)
	DeleteImage(ctx context.Context, objectKey string) error
}

// uploadService implements the UploadService interface.
type uploadService struct {
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

// NewUploadService creates a new instance of uploadService.
func NewUploadService(fileStorage storage.FileStorage, logger *zap.Logger) UploadService {
	return &uploadService{
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// SignImageUpload generates a fresh object key under folder and a presigned
// PUT URL for it. The folder defaults to "courses".
func (s *uploadService) SignImageUpload(ctx context.Context, folder, contentType string) (*SignedUpload, error) {
	extension, supported := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !supported {
		return nil, ErrUnsupportedImageType
	}

	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		folder = "courses"
	}

	objectKey := fmt.Sprintf("%s/%s.%s", folder, uuid.NewString(), extension)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	return &SignedUpload{
		Key:       objectKey,
		URL:       uploadURL,
		ExpiresAt: time.Now().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}

// DeleteImage removes an uploaded object, e.g. a replaced course cover.
func (s *uploadService) DeleteImage(ctx context.Context, objectKey string) error {
	objectKey = strings.Trim(strings.TrimSpace(objectKey), "/")
	if objectKey == "" {
		return errors.New("object key is required")
	}
	return s.fileStorage.DeleteObject(ctx, objectKey)
}
