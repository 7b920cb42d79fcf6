package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/service"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, logger: logger}
}

// QuizAttempts reports daily quiz activity. The range query parameter
// selects a 7 or 30 day window and defaults to 7 days.
func (h *AnalyticsHandler) QuizAttempts(c *gin.Context) {
	report, err := h.analyticsService.QuizAttempts(c.Request.Context(), c.Query("range"))
	if err != nil {
		h.logger.Error("failed to build quiz attempts report", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve quiz analytics")
		return
	}
	c.JSON(http.StatusOK, report)
}

// UserSignups reports new account counts, bucketed monthly by default or
// yearly when range=yearly.
func (h *AnalyticsHandler) UserSignups(c *gin.Context) {
	report, err := h.analyticsService.UserSignups(c.Request.Context(), c.Query("range"))
	if err != nil {
		h.logger.Error("failed to build signups report", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve signup analytics")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Countries reports active users grouped by country for a week, month or
// year window.
func (h *AnalyticsHandler) Countries(c *gin.Context) {
	report, err := h.analyticsService.Countries(c.Request.Context(), c.Query("range"))
	if err != nil {
		h.logger.Error("failed to build countries report", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve country analytics")
		return
	}
	c.JSON(http.StatusOK, report)
}
