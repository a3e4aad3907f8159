package handler

import (
	"net/http"
	"time"

	"pingup/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// MessageResponse is returned by operations without a body of their own.
type MessageResponse struct {
	Message string `json:"message" example:"Unfollowed"`
}

// ConnectionRequestResponse describes a connection request.
type ConnectionRequestResponse struct {
	ID         string               `json:"id"`
	FromUserID string               `json:"from_user_id"`
	ToUserID   string               `json:"to_user_id"`
	Status     models.RequestStatus `json:"status" example:"pending"`
	CreatedAt  time.Time            `json:"created_at"`
}

func connectionRequest(r models.ConnectionRequest) ConnectionRequestResponse {
	return ConnectionRequestResponse{
		ID:         r.ID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

// Follow godoc
// @Summary      Follow a user
// @Description  Follows a public user immediately, or sends a follow request to a private one.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target User ID"
// @Success      200  {object}  relationship.FollowResult
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already following, request pending or self follow"
// @Failure      503  {object}  ErrorResponse
// @Router       /users/{id}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	result, err := h.Relationships.Follow(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Description  Stops following a user and withdraws a pending follow request.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target User ID"
// @Success      200  {object}  MessageResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /users/{id}/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	if err := h.Relationships.Unfollow(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Unfollowed"})
}

// AcceptFollow godoc
// @Summary      Accept a follow request
// @Description  Accepts the pending follow request of user {id}, making the two users connected.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Requesting User ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse "No pending request"
// @Router       /users/{id}/follow/accept [post]
func (h *Handler) AcceptFollow(c *gin.Context) {
	if err := h.Relationships.AcceptFollowRequest(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Follow request accepted"})
}

// RejectFollow godoc
// @Summary      Reject a follow request
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Requesting User ID"
// @Success      200  {object}  MessageResponse
// @Router       /users/{id}/follow/reject [post]
func (h *Handler) RejectFollow(c *gin.Context) {
	if err := h.Relationships.RejectFollowRequest(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Follow request rejected"})
}

// Connect godoc
// @Summary      Send a connection request
// @Description  Sends a connection request. At most a fixed number of requests may be sent per 24 hours.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target User ID"
// @Success      201  {object}  ConnectionRequestResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already connected or request pending"
// @Failure      429  {object}  ErrorResponse
// @Router       /users/{id}/connect [post]
func (h *Handler) Connect(c *gin.Context) {
	req, err := h.Relationships.SendConnectionRequest(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, connectionRequest(req))
}

// AcceptConnection godoc
// @Summary      Accept a connection request
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Requesting User ID"
// @Success      200  {object}  ConnectionRequestResponse
// @Failure      404  {object}  ErrorResponse "No request found"
// @Router       /users/{id}/connect/accept [post]
func (h *Handler) AcceptConnection(c *gin.Context) {
	req, err := h.Relationships.AcceptConnectionRequest(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, connectionRequest(req))
}

// DeclineConnection godoc
// @Summary      Decline a connection request
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Requesting User ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse "No request found"
// @Router       /users/{id}/connect/decline [post]
func (h *Handler) DeclineConnection(c *gin.Context) {
	if err := h.Relationships.DeclineConnectionRequest(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Connection request declined"})
}

// GetConnections godoc
// @Summary      Get my relationships
// @Description  Lists connections, followers, following, pending followers and pending connection requests.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  relationship.ConnectionsView
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/connections [get]
func (h *Handler) GetConnections(c *gin.Context) {
	view, err := h.Relationships.ConnectionsView(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
