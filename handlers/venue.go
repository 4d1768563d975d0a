package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pitchbook/services/venue"
	"pitchbook/utils"
)

// VenueHandler exposes venue session administration and browsing over HTTP.
type VenueHandler struct {
	Service venue.VenueService
	Logger  *zap.Logger
}

func NewVenueHandler(svc venue.VenueService, logger *zap.Logger) *VenueHandler {
	return &VenueHandler{Service: svc, Logger: logger}
}

// ListSessions handles GET /api/venues/:venueID/sessions.
func (h *VenueHandler) ListSessions(c *gin.Context) {
	sessions, err := h.Service.ListSessions(
		c.Request.Context(),
		c.Param("venueID"),
		c.Query("from"),
		c.Query("to"),
		c.Query("status"),
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// CreateSession handles POST /api/venues/:venueID/sessions (admin).
func (h *VenueHandler) CreateSession(c *gin.Context) {
	var input venue.CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.CreateSession(c.Request.Context(), c.Param("venueID"), input)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// CancelSession handles DELETE /api/venues/:venueID/sessions/:id (admin).
func (h *VenueHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session canceled"})
}
