package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prepdash/internal/features/motivation/application"
	"prepdash/internal/features/motivation/domain"
)

// MotivationHandler holds the motivation service.
type MotivationHandler struct {
	motivationService application.MotivationService
}

// NewMotivationHandler creates a new MotivationHandler.
func NewMotivationHandler(motivationService application.MotivationService) *MotivationHandler {
	return &MotivationHandler{motivationService: motivationService}
}

// MountHandler registers the learner's dashboard and kicks off the automatic fetch.
func (h *MotivationHandler) MountHandler(c *gin.Context) {
	var req domain.MountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o, err := h.motivationService.Mount(c.Request.Context(), c.Param("id"), req.DisplayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mount learner: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, o.State())
}

// GetMotivationHandler returns the current motivation state.
func (h *MotivationHandler) GetMotivationHandler(c *gin.Context) {
	o, err := h.motivationService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o.State())
}

// RefreshMotivationHandler starts a refresh and answers immediately with the
// loading state; clients poll GetMotivationHandler for the result.
func (h *MotivationHandler) RefreshMotivationHandler(c *gin.Context) {
	if _, err := h.motivationService.Refresh(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	o, err := h.motivationService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, o.State())
}

// Register mounts the motivation routes on a learner-scoped group.
func (h *MotivationHandler) Register(r gin.IRouter) {
	r.POST("/mount", h.MountHandler)
	r.GET("/motivation", h.GetMotivationHandler)
	r.POST("/motivation/refresh", h.RefreshMotivationHandler)
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrUnknownLearner) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
