package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/service"
)

type UploadHandler struct {
	uploadService service.UploadService
	logger        *zap.Logger
}

func NewUploadHandler(uploadService service.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, logger: logger}
}

type signUploadRequest struct {
	Folder      string `json:"folder"`
	ContentType string `json:"contentType" binding:"required"`
}

type deleteImageRequest struct {
	Key string `json:"key" binding:"required"`
}

// SignUpload issues a presigned PUT URL so the panel can upload course
// images directly to object storage.
func (h *UploadHandler) SignUpload(c *gin.Context) {
	var req signUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	signed, err := h.uploadService.SignImageUpload(c.Request.Context(), req.Folder, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImageType) {
			abortWithError(c, http.StatusBadRequest, "Unsupported image content type")
			return
		}
		h.logger.Error("failed to sign upload", zap.String("contentType", req.ContentType), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to sign upload")
		return
	}

	c.JSON(http.StatusOK, signed)
}

// DeleteImage removes a previously uploaded object.
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	var req deleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.uploadService.DeleteImage(c.Request.Context(), req.Key); err != nil {
		h.logger.Error("failed to delete image", zap.String("key", req.Key), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
