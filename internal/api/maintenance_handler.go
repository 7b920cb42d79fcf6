package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"madrasa/course-admin/internal/service"
)

type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
	logger             *zap.Logger
}

func NewMaintenanceHandler(maintenanceService service.MaintenanceService, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService, logger: logger}
}

// BackfillDescriptions fills missing video description fields across the
// whole catalog.
func (h *MaintenanceHandler) BackfillDescriptions(c *gin.Context) {
	report, err := h.maintenanceService.BackfillVideoDescriptions(c.Request.Context())
	if err != nil {
		h.logger.Error("description backfill failed", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Backfill failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

// RemoveLegacyTitles strips abandoned English title fields from courses
// and videos.
func (h *MaintenanceHandler) RemoveLegacyTitles(c *gin.Context) {
	report, err := h.maintenanceService.RemoveLegacyTitles(c.Request.Context())
	if err != nil {
		h.logger.Error("legacy title cleanup failed", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Cleanup failed")
		return
	}
	c.JSON(http.StatusOK, report)
}
