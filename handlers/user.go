package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pitchbook/services/user"
	"pitchbook/utils"
)

// UserHandler exposes the minimal account surface the booking core needs.
type UserHandler struct {
	Service user.UserService
	Logger  *zap.Logger
}

func NewUserHandler(svc user.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Service: svc, Logger: logger}
}

// RegisterUser handles POST /api/users/register. Registration also attaches
// any pending reservation invitations for the email to the new account.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), input)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateFCMToken handles PUT /api/users/fcm-token for the authenticated user.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.UpdateFCMToken(c.Request.Context(), c.GetString("userID"), input.Token); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token updated"})
}
