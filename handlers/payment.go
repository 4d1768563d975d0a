package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pitchbook/models"
	"pitchbook/services/payment"
	"pitchbook/utils"
)

// PaymentHandler exposes payment initiation and confirmation over HTTP.
type PaymentHandler struct {
	Coordinator payment.PaymentCoordinator
	Logger      *zap.Logger
}

func NewPaymentHandler(coordinator payment.PaymentCoordinator, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Coordinator: coordinator, Logger: logger}
}

// InitiatePayment handles POST /api/payments/:reservationID/initiate.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	plan, err := h.Coordinator.Initiate(c.Request.Context(), c.Param("reservationID"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ConfirmPayment handles POST /api/payments/:reservationID/confirm. The payer
// defaults to the authenticated caller; admins may confirm on behalf of any
// payer.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var input struct {
		PayerID string `json:"payerId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.PayerID == "" || !c.GetBool("isAdmin") {
		input.PayerID = c.GetString("userID")
	}

	result, err := h.Coordinator.Confirm(c.Request.Context(), c.Param("reservationID"), input.PayerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"fullyConfirmed": result.FullyConfirmed,
		"message":        result.Message,
	})
}

// PaymentStatus handles GET /api/payments/:reservationID/status.
func (h *PaymentHandler) PaymentStatus(c *gin.Context) {
	done, err := h.Coordinator.CheckCompletion(c.Request.Context(), c.Param("reservationID"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	status := models.ReservationPending
	if done {
		status = models.ReservationConfirmed
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
