package handler

import (
	"errors"
	"net/http"

	"pingup/backend/internal/media"

	"github.com/gin-gonic/gin"
)

// SendMessageInput is the body of a message. Multipart requests may add an
// image file field.
type SendMessageInput struct {
	ToUserID string `json:"to_user_id" form:"to_user_id" example:"user_2abc"`
	Text     string `json:"text" form:"text" example:"hello"`
}

// SendMessage godoc
// @Summary      Send a direct message
// @Description  Stores a message and pushes it to the recipient's live channel. Send JSON, or multipart form data with an optional "image" file.
// @Tags         messages
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        input body      SendMessageInput  true   "Message"
// @Param        image formData  file              false  "Image attachment"
// @Success      201  {object}  messaging.SendResult
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse "Media uploads are not configured or the store is unavailable"
// @Router       /messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	userID := currentUser(c)

	var input SendMessageInput
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	var mediaURL string
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		file, err := c.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			badRequest(c, err.Error())
			return
		case h.Media == nil:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Media uploads are not configured", Code: "media_disabled"})
			return
		default:
			f, err := file.Open()
			if err != nil {
				badRequest(c, "Could not read image")
				return
			}
			defer f.Close()

			key := media.ObjectKey("messages/"+userID, file.Filename)
			mediaURL, err = h.Media.Put(c.Request.Context(), key, file.Header.Get("Content-Type"), f)
			if err != nil {
				h.logger().WithError(err).WithField("user_id", userID).Error("Media upload failed")
				c.AbortWithStatusJSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to upload image", Code: "media_upload_failed"})
				return
			}
		}
	}

	result, err := h.Messages.Send(c.Request.Context(), userID, input.ToUserID, input.Text, mediaURL)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetThread godoc
// @Summary      Get a conversation
// @Description  Lists every message between the current user and {userId}, newest first, and marks the ones received from {userId} as seen.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "Other User ID"
// @Success      200     {array}   messaging.Message
// @Failure      503     {object}  ErrorResponse
// @Router       /messages/{userId} [get]
func (h *Handler) GetThread(c *gin.Context) {
	msgs, err := h.Messages.Thread(c.Request.Context(), currentUser(c), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// RecentMessages godoc
// @Summary      Get received messages
// @Description  Lists messages sent to the current user, newest first.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   messaging.Message
// @Router       /messages/recent [get]
func (h *Handler) RecentMessages(c *gin.Context) {
	msgs, err := h.Messages.Recent(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
