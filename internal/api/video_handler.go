package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/service"
)

type VideoHandler struct {
	videoService service.VideoService
	logger       *zap.Logger
}

func NewVideoHandler(videoService service.VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{videoService: videoService, logger: logger}
}

type createVideoRequest struct {
	CourseID    string `json:"courseId" binding:"required"`
	VideoID     string `json:"videoId" binding:"required"`
	TitleAr     string `json:"titleAr" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type updateVideoRequest struct {
	VideoID     *string `json:"videoId"`
	TitleAr     *string `json:"titleAr"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

type reindexRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// ListVideos returns either every video, or the ordered videos of one
// course when the courseId query parameter is present. The per-course
// listing repairs ordering gaps in the background.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	courseID := c.Query("courseId")

	var (
		videos []service.VideoSummary
		err    error
	)
	if courseID != "" {
		videos, err = h.videoService.CourseVideos(c.Request.Context(), courseID)
	} else {
		videos, err = h.videoService.ListVideos(c.Request.Context(), "")
	}
	if err != nil {
		h.logger.Error("failed to list videos", zap.String("courseId", courseID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve videos")
		return
	}

	c.JSON(http.StatusOK, videos)
}

func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req createVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.videoService.CreateVideo(c.Request.Context(), req.CourseID, req.VideoID, req.TitleAr, req.Description, req.Order)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVideoFieldsRequired), errors.Is(err, service.ErrCourseIDRequired):
			abortWithError(c, http.StatusBadRequest, "Course, video id and title are required")
		case errors.Is(err, service.ErrInvalidYouTubeID):
			abortWithError(c, http.StatusBadRequest, "Could not extract a valid YouTube video id")
		default:
			h.logger.Error("failed to create video", zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, "Failed to create video")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}

	var req updateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	patch := service.VideoPatch{
		RawVideoID:  req.VideoID,
		TitleAr:     req.TitleAr,
		Description: req.Description,
		Order:       req.Order,
	}

	err := h.videoService.UpdateVideo(c.Request.Context(), videoID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsToUpdate):
			abortWithError(c, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, service.ErrInvalidYouTubeID):
			abortWithError(c, http.StatusBadRequest, "Could not extract a valid YouTube video id")
		case errors.Is(err, service.ErrDescriptionRequired):
			abortWithError(c, http.StatusBadRequest, "Description cannot be blank")
		case errors.Is(err, service.ErrVideoNotFound):
			abortWithError(c, http.StatusNotFound, "Video not found")
		default:
			h.logger.Error("failed to update video", zap.String("videoId", videoID.Hex()), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, "Failed to update video")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}

	if err := h.videoService.DeleteVideo(c.Request.Context(), videoID); err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, "Video not found")
			return
		}
		h.logger.Error("failed to delete video", zap.String("videoId", videoID.Hex()), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to delete video")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reindex rewrites the order of every video in a course back to a dense
// 1..N sequence.
func (h *VideoHandler) Reindex(c *gin.Context) {
	var req reindexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.videoService.Reindex(c.Request.Context(), req.CourseID); err != nil {
		if errors.Is(err, service.ErrCourseIDRequired) {
			abortWithError(c, http.StatusBadRequest, "Course id is required")
			return
		}
		h.logger.Error("failed to reindex videos", zap.String("courseId", req.CourseID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to reindex videos")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *VideoHandler) GetQuestions(c *gin.Context) {
	videoID, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}

	video, questions, err := h.videoService.GetQuestions(c.Request.Context(), videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			abortWithError(c, http.StatusNotFound, "Video not found")
			return
		}
		h.logger.Error("failed to load video questions", zap.String("videoId", videoID.Hex()), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve questions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videoId":   video.ID.Hex(),
		"titleAr":   video.TitleAr,
		"questions": questions,
	})
}

func (h *VideoHandler) AddQuestion(c *gin.Context) {
	videoID, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.videoService.AddQuestion(c.Request.Context(), videoID, req.QuestionAr, req.OptionsAr, req.CorrectAnswerAr, req.Score)
	if h.handleQuestionError(c, videoID, err) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *VideoHandler) UpdateQuestion(c *gin.Context) {
	videoID, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}
	index, ok := parseQuestionIndex(c)
	if !ok {
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.videoService.UpdateQuestion(c.Request.Context(), videoID, index, req.QuestionAr, req.OptionsAr, req.CorrectAnswerAr, req.Score)
	if h.handleQuestionError(c, videoID, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *VideoHandler) DeleteQuestion(c *gin.Context) {
	videoID, ok := parseObjectID(c, "videoId")
	if !ok {
		return
	}
	index, ok := parseQuestionIndex(c)
	if !ok {
		return
	}

	err := h.videoService.DeleteQuestion(c.Request.Context(), videoID, index)
	if h.handleQuestionError(c, videoID, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *VideoHandler) handleQuestionError(c *gin.Context, videoID primitive.ObjectID, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		abortWithError(c, http.StatusNotFound, "Video not found")
	case service.IsQuestionValidationError(err), errors.Is(err, service.ErrQuestionIndexInvalid):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("video question mutation failed", zap.String("videoId", videoID.Hex()), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to update questions")
	}
	return true
}
