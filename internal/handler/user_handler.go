package handler

import (
	"errors"
	"net/http"
	"time"

	"pingup/backend/internal/feed"
	"pingup/backend/internal/models"
	"pingup/backend/internal/relationship"
	"pingup/backend/internal/users"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID             string               `json:"id" example:"user_2abc"`
	Username       string               `json:"username" example:"john.doe"`
	FullName       string               `json:"full_name" example:"John Doe"`
	Bio            string               `json:"bio"`
	Location       string               `json:"location"`
	ProfilePicture string               `json:"profile_picture,omitempty"`
	AccountType    models.AccountType   `json:"account_type" example:"public"`
	Relation       *relationship.Status `json:"relation,omitempty"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	PublicUserResponse
	Email     string    `json:"email" example:"john@example.com"`
	CreatedAt time.Time `json:"created_at"`
}

// UserProfileResponse is a public profile with one page of the user's
// posts. Posts is omitted and PostsHidden set when the account is private
// and the viewer may not see it.
type UserProfileResponse struct {
	PublicUserResponse
	Posts       *PaginatedResponse[feed.Post] `json:"posts,omitempty"`
	PostsHidden bool                          `json:"posts_hidden"`
}

func publicUser(u models.User) PublicUserResponse {
	return PublicUserResponse{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Bio:            u.Bio,
		Location:       u.Location,
		ProfilePicture: u.ProfilePicture,
		AccountType:    u.AccountType,
	}
}

func privateUser(u models.User) PrivateUserResponse {
	return PrivateUserResponse{
		PublicUserResponse: publicUser(u),
		Email:              u.Email,
		CreatedAt:          u.CreatedAt,
	}
}

func publicUsers(list []models.User) []PublicUserResponse {
	out := make([]PublicUserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, publicUser(u))
	}
	return out
}

// endregion

// GetMe godoc
// @Summary      Get current user
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.Users.Profile(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, privateUser(user))
}

// UpdateMe godoc
// @Summary      Update current user
// @Description  Changes username, name, bio, location or account type. Omitted fields are left as they are.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body users.ProfilePatch true "Fields to change"
// @Success      200  {object}  PrivateUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Username taken"
// @Router       /users/me [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	var patch users.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, err := h.Users.UpdateProfile(c.Request.Context(), currentUser(c), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, privateUser(user))
}

// DiscoverUsers godoc
// @Summary      Search users
// @Description  Finds other users whose username, e-mail, full name or location contains the query, ignoring case.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search text"
// @Success      200  {array}   PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /users/discover [get]
func (h *Handler) DiscoverUsers(c *gin.Context) {
	found, err := h.Users.Discover(c.Request.Context(), currentUser(c), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, publicUsers(found))
}

// GetSuggestions godoc
// @Summary      Suggest users
// @Description  The newest users the current user neither follows nor is connected to.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Number of users"  default(10)
// @Success      200    {array}   PublicUserResponse
// @Router       /users/suggestions [get]
func (h *Handler) GetSuggestions(c *gin.Context) {
	suggested, err := h.Users.Suggestions(c.Request.Context(), currentUser(c), queryInt(c.Query("limit")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, publicUsers(suggested))
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile of a user and a page of their posts. Posts of a private account are only included for the owner, connections and approved followers. With a token, the viewer's relationship to the user is included.
// @Tags         users
// @Produce      json
// @Param        id     path      string  true   "User ID"
// @Param        page   query     int     false  "Posts page"      default(1)
// @Param        limit  query     int     false  "Posts per page"  default(20)
// @Success      200    {object}  UserProfileResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *Handler) GetUserByID(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.Users.Profile(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	viewerID := currentUser(c)
	resp := UserProfileResponse{PublicUserResponse: publicUser(user)}
	if viewerID != "" && viewerID != user.ID {
		status, err := h.Relationships.Status(ctx, viewerID, user.ID)
		if err != nil {
			h.fail(c, err)
			return
		}
		resp.Relation = &status
	}

	page, limit := feed.NormalizePage(queryInt(c.Query("page")), queryInt(c.Query("limit")))
	posts, total, err := h.Feed.AuthorPosts(ctx, viewerID, user.ID, page, limit)
	switch {
	case errors.Is(err, feed.ErrPostsHidden):
		resp.PostsHidden = true
	case err != nil:
		h.fail(c, err)
		return
	default:
		paged := NewPaginatedResponse(posts, total, page, limit)
		resp.Posts = &paged
	}
	c.JSON(http.StatusOK, resp)
}
