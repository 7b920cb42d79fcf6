package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/repository"
	"madrasa/course-admin/internal/service"
)

type CourseHandler struct {
	courseService service.CourseService
	logger        *zap.Logger
}

func NewCourseHandler(courseService service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, logger: logger}
}

type createCourseRequest struct {
	TitleAr       string `json:"titleAr" binding:"required"`
	DescriptionAr string `json:"descriptionAr"`
	Instructor    string `json:"instructor"`
	ImageURL      string `json:"imageUrl"`
	Published     bool   `json:"published"`
}

type updateCourseRequest struct {
	TitleAr       *string `json:"titleAr"`
	DescriptionAr *string `json:"descriptionAr"`
	Instructor    *string `json:"instructor"`
	ImageURL      *string `json:"imageUrl"`
	Published     *bool   `json:"published"`
}

type questionRequest struct {
	QuestionAr      string   `json:"questionAr" binding:"required"`
	OptionsAr       []string `json:"optionsAr" binding:"required"`
	CorrectAnswerAr string   `json:"correctAnswerAr" binding:"required"`
	Score           float64  `json:"score"`
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list courses", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve courses")
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), req.TitleAr, req.DescriptionAr, req.Instructor, req.ImageURL, req.Published)
	if err != nil {
		if errors.Is(err, service.ErrCourseTitleRequired) {
			abortWithError(c, http.StatusBadRequest, "Course title is required")
			return
		}
		h.logger.Error("failed to create course", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to create course")
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	update := repository.CourseUpdate{
		TitleAr:       req.TitleAr,
		DescriptionAr: req.DescriptionAr,
		Instructor:    req.Instructor,
		ImageURL:      req.ImageURL,
		Published:     req.Published,
	}

	err := h.courseService.UpdateCourse(c.Request.Context(), courseID, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsToUpdate):
			abortWithError(c, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, service.ErrCourseNotFound):
			abortWithError(c, http.StatusNotFound, "Course not found")
		default:
			h.logger.Error("failed to update course", zap.String("courseId", courseID.Hex()), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, "Failed to update course")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	if err := h.courseService.DeleteCourse(c.Request.Context(), courseID); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			abortWithError(c, http.StatusNotFound, "Course not found")
			return
		}
		h.logger.Error("failed to delete course", zap.String("courseId", courseID.Hex()), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to delete course")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CourseHandler) GetFinalQuiz(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	course, questions, err := h.courseService.GetFinalQuiz(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			abortWithError(c, http.StatusNotFound, "Course not found")
			return
		}
		h.logger.Error("failed to load final quiz", zap.String("courseId", courseID.Hex()), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve final quiz")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courseId":  course.ID.Hex(),
		"titleAr":   course.TitleAr,
		"questions": questions,
	})
}

func (h *CourseHandler) AddFinalQuizQuestion(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.courseService.AddFinalQuizQuestion(c.Request.Context(), courseID, req.QuestionAr, req.OptionsAr, req.CorrectAnswerAr, req.Score)
	if h.handleFinalQuizError(c, courseID, err) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *CourseHandler) UpdateFinalQuizQuestion(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
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

	err := h.courseService.UpdateFinalQuizQuestion(c.Request.Context(), courseID, index, req.QuestionAr, req.OptionsAr, req.CorrectAnswerAr, req.Score)
	if h.handleFinalQuizError(c, courseID, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CourseHandler) DeleteFinalQuizQuestion(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}
	index, ok := parseQuestionIndex(c)
	if !ok {
		return
	}

	err := h.courseService.DeleteFinalQuizQuestion(c.Request.Context(), courseID, index)
	if h.handleFinalQuizError(c, courseID, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleFinalQuizError writes the error response for final quiz mutations
// and reports whether the request was aborted.
func (h *CourseHandler) handleFinalQuizError(c *gin.Context, courseID primitive.ObjectID, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		abortWithError(c, http.StatusNotFound, "Course not found")
	case service.IsQuestionValidationError(err), errors.Is(err, service.ErrQuestionIndexInvalid):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("final quiz mutation failed", zap.String("courseId", courseID.Hex()), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to update final quiz")
	}
	return true
}

// parseObjectID parses the named path parameter as a Mongo ObjectID,
// writing a 400 response when it is malformed.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+param+" format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseQuestionIndex parses the positional question index path parameter.
func parseQuestionIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid question index")
		return 0, false
	}
	return index, true
}
