package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DeviceTokenInput registers a push notification target.
type DeviceTokenInput struct {
	Token    string `json:"token" binding:"required" example:"fcm-token"`
	Platform string `json:"platform" binding:"required" example:"android"`
}

// DeviceTokenResponse describes a registered push notification target.
type DeviceTokenResponse struct {
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterDeviceToken godoc
// @Summary      Register a device token
// @Description  Registers or refreshes an FCM token for push notifications. Platform is android or ios.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body DeviceTokenInput true "Device token"
// @Success      201  {object}  DeviceTokenResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /notifications/tokens [post]
func (h *Handler) RegisterDeviceToken(c *gin.Context) {
	var input DeviceTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	tok, err := h.Notify.RegisterToken(c.Request.Context(), currentUser(c), input.Token, input.Platform)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, DeviceTokenResponse{
		Token:     tok.Token,
		Platform:  tok.Platform,
		UpdatedAt: tok.UpdatedAt,
	})
}

// DeleteDeviceToken godoc
// @Summary      Delete a device token
// @Tags         notifications
// @Security     BearerAuth
// @Param        token  path  string  true  "Device token"
// @Success      204
// @Router       /notifications/tokens/{token} [delete]
func (h *Handler) DeleteDeviceToken(c *gin.Context) {
	if err := h.Notify.DeleteToken(c.Request.Context(), currentUser(c), c.Param("token")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
