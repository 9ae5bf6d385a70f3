package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prepdash/internal/features/tracks/application"
	"prepdash/internal/features/tracks/domain"
)

// DashboardHandler holds the dashboard service.
type DashboardHandler struct {
	dashboardService application.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService application.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// BuildDashboardHandler derives matched tracks and completion from the posted progress.
func (h *DashboardHandler) BuildDashboardHandler(c *gin.Context) {
	var progress domain.UserProgress
	if err := c.ShouldBindJSON(&progress); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.dashboardService.BuildDashboard(progress))
}

// SelectTrackHandler resolves the navigation target for a clicked track.
func (h *DashboardHandler) SelectTrackHandler(c *gin.Context) {
	var req domain.SelectTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	nav, err := h.dashboardService.SelectTrack(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, nav)
}

// Register mounts the dashboard routes on r.
func (h *DashboardHandler) Register(r gin.IRouter) {
	r.POST("/dashboard", h.BuildDashboardHandler)
	r.POST("/tracks/select", h.SelectTrackHandler)
}
