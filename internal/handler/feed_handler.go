package handler

import (
	"net/http"

	"pingup/backend/internal/feed"

	"github.com/gin-gonic/gin"
)

// GetFeed godoc
// @Summary      Get the post feed
// @Description  Posts by the current user, their connections, and followed users whose posts they may see, newest first.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(20)
// @Success      200    {object}  PaginatedResponse[feed.Post]
// @Failure      404    {object}  ErrorResponse
// @Router       /feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
	page, limit := feed.NormalizePage(queryInt(c.Query("page")), queryInt(c.Query("limit")))

	posts, total, err := h.Feed.Posts(c.Request.Context(), currentUser(c), page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(posts, total, page, limit))
}

// GetStories godoc
// @Summary      Get stories
// @Description  Unexpired stories of visible authors, newest first.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   feed.Story
// @Router       /stories [get]
func (h *Handler) GetStories(c *gin.Context) {
	stories, err := h.Feed.Stories(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if stories == nil {
		stories = []feed.Story{}
	}
	c.JSON(http.StatusOK, stories)
}
