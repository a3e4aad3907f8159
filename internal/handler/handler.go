// Package handler exposes the service over HTTP.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/auth"
	"pingup/backend/internal/feed"
	"pingup/backend/internal/hub"
	"pingup/backend/internal/jobs"
	"pingup/backend/internal/messaging"
	"pingup/backend/internal/notify"
	"pingup/backend/internal/relationship"
	"pingup/backend/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	defaultBufferSize = 16
	defaultHeartbeat  = 25 * time.Second
)

// Uploader stores uploaded media and returns its public URL.
type Uploader interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Handler holds the services behind the HTTP routes. Media is nil when
// uploads are not configured.
type Handler struct {
	Users         *users.Service
	Relationships *relationship.Engine
	Messages      *messaging.Service
	Feed          *feed.Service
	Notify        *notify.Service
	Media         Uploader
	Live          *hub.Hub
	Jobs          jobs.Queue
	Logger        logrus.FieldLogger

	JWTSecret      []byte
	WebhookSecret  string
	LiveBufferSize int
	Heartbeat      time.Duration
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
	Code  string `json:"code,omitempty" example:"user_not_found"`
}

// Register mounts every route on rg, normally the /api/v1 group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	required := auth.AuthMiddleware(h.JWTSecret)

	rg.POST("/webhooks/identity", h.IdentityWebhook)

	userRoutes := rg.Group("/users")
	{
		userRoutes.GET("/me", required, h.GetMe)
		userRoutes.PATCH("/me", required, h.UpdateMe)
		userRoutes.GET("/me/connections", required, h.GetConnections)
		userRoutes.GET("/discover", required, h.DiscoverUsers)
		userRoutes.GET("/suggestions", required, h.GetSuggestions)
		userRoutes.GET("/:id", auth.OptionalAuthMiddleware(h.JWTSecret), h.GetUserByID)

		userRoutes.POST("/:id/follow", required, h.Follow)
		userRoutes.POST("/:id/unfollow", required, h.Unfollow)
		userRoutes.POST("/:id/follow/accept", required, h.AcceptFollow)
		userRoutes.POST("/:id/follow/reject", required, h.RejectFollow)
		userRoutes.POST("/:id/connect", required, h.Connect)
		userRoutes.POST("/:id/connect/accept", required, h.AcceptConnection)
		userRoutes.POST("/:id/connect/decline", required, h.DeclineConnection)
	}

	messageRoutes := rg.Group("/messages")
	messageRoutes.Use(required)
	{
		messageRoutes.GET("/stream", h.Stream)
		messageRoutes.GET("/ws", h.Socket)
		messageRoutes.GET("/recent", h.RecentMessages)
		messageRoutes.POST("", h.SendMessage)
		messageRoutes.GET("/:userId", h.GetThread) // after the static paths
	}

	rg.GET("/feed", required, h.GetFeed)
	rg.GET("/stories", required, h.GetStories)

	tokenRoutes := rg.Group("/notifications/tokens")
	tokenRoutes.Use(required)
	{
		tokenRoutes.POST("", h.RegisterDeviceToken)
		tokenRoutes.DELETE("/:token", h.DeleteDeviceToken)
	}
}

// fail writes err with the status of its kind.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusOf(err)
	message := "Internal server error"

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	switch status {
	case http.StatusServiceUnavailable:
		c.Header("Retry-After", "1")
		message = "Service temporarily unavailable, retry later"
		h.logger().WithError(err).WithField("path", c.FullPath()).Warn("Store unavailable")
	case http.StatusInternalServerError:
		h.logger().WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: apperr.CodeOf(err)})
}

func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	case apperr.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "validation"})
}

// currentUser returns the id set by the auth middleware.
func currentUser(c *gin.Context) string {
	id, _ := auth.UserID(c)
	return id
}

func (h *Handler) bufferSize() int {
	if h.LiveBufferSize <= 0 {
		return defaultBufferSize
	}
	return h.LiveBufferSize
}

func (h *Handler) heartbeat() time.Duration {
	if h.Heartbeat <= 0 {
		return defaultHeartbeat
	}
	return h.Heartbeat
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Logger == nil {
		return logrus.StandardLogger()
	}
	return h.Logger
}
