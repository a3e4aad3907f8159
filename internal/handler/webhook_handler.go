package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"pingup/backend/internal/jobs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const webhookSecretHeader = "X-Webhook-Secret"

// IdentityEvent is a user lifecycle event from the identity provider.
type IdentityEvent struct {
	Type string           `json:"type" binding:"required" example:"user.created"`
	Data IdentityUserData `json:"data"`
}

type IdentityUserData struct {
	ID             string         `json:"id" example:"user_2abc"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ImageURL       string         `json:"image_url"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
}

type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

var identityJobs = map[string]string{
	"user.created": jobs.UserCreated,
	"user.updated": jobs.UserUpdated,
	"user.deleted": jobs.UserDeleted,
}

// IdentityWebhook godoc
// @Summary      Receive identity provider events
// @Description  Queues user.created, user.updated and user.deleted events for the user directory. Other event types are acknowledged and ignored.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret  header  string         true  "Shared webhook secret"
// @Param        input             body    IdentityEvent  true  "Event"
// @Success      202  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /webhooks/identity [post]
func (h *Handler) IdentityWebhook(c *gin.Context) {
	got := c.GetHeader(webhookSecretHeader)
	if h.WebhookSecret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.WebhookSecret)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid webhook secret"})
		return
	}

	var event IdentityEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		badRequest(c, err.Error())
		return
	}
	name, ok := identityJobs[event.Type]
	if !ok {
		c.JSON(http.StatusAccepted, MessageResponse{Message: "Ignored"})
		return
	}
	if strings.TrimSpace(event.Data.ID) == "" {
		badRequest(c, "data.id: required")
		return
	}

	payload := jobs.IdentityPayload{
		ID:             event.Data.ID,
		FirstName:      event.Data.FirstName,
		LastName:       event.Data.LastName,
		ProfilePicture: event.Data.ImageURL,
	}
	if len(event.Data.EmailAddresses) > 0 {
		payload.Email = event.Data.EmailAddresses[0].EmailAddress
	}

	if err := h.Jobs.Enqueue(c.Request.Context(), name, payload); err != nil {
		h.logger().WithError(err).WithFields(logrus.Fields{
			"job":     name,
			"user_id": payload.ID,
		}).Error("Failed to queue identity event")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Failed to queue event", Code: "store_unavailable"})
		return
	}
	c.JSON(http.StatusAccepted, MessageResponse{Message: "Queued"})
}
