package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pitchbook/models"
	"pitchbook/services/reservation"
	"pitchbook/utils"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
type ReservationHandler struct {
	Service reservation.ReservationService
	Logger  *zap.Logger
}

func NewReservationHandler(svc reservation.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Service: svc, Logger: logger}
}

// CreateReservation handles POST /api/reservations. The organizer is always
// the authenticated caller.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var input models.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.OrganizerID = c.GetString("userID")

	res, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetReservation handles GET /api/reservations/:id. Organizer, participants
// and admins may read the record.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	res, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if !h.canAccess(c, res) {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "you are not part of this reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetReservationByReference handles GET /api/bookings/:reference — lookup by
// the shareable booking code, same access rules as lookup by id.
func (h *ReservationHandler) GetReservationByReference(c *gin.Context) {
	res, err := h.Service.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if !h.canAccess(c, res) {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "you are not part of this reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListReservations handles GET /api/reservations. Admins may list everything
// or filter by an arbitrary userId; everyone else sees their own bookings.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	userID := c.Query("userId")
	isAdmin := c.GetBool("isAdmin")

	if isAdmin && userID == "" {
		all, err := h.Service.ListAll(c.Request.Context())
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, all)
		return
	}
	if !isAdmin || userID == "" {
		userID = c.GetString("userID")
	}

	list, err := h.Service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateReservation handles PATCH /api/reservations/:id.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Service.UpdateFields(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SetReservationStatus handles PATCH /api/reservations/:id/status (admin).
func (h *ReservationHandler) SetReservationStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Service.SetStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteReservation handles DELETE /api/reservations/:id.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation deleted"})
}

func (h *ReservationHandler) canAccess(c *gin.Context, res *models.Reservation) bool {
	if c.GetBool("isAdmin") {
		return true
	}
	userID := c.GetString("userID")
	if res.OrganizerID == userID {
		return true
	}
	for _, p := range res.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
