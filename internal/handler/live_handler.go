package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pingup/backend/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	eventConnected = "connected"
	writeWait      = 10 * time.Second
	maxInboundSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func connectedEvent(userID string) []byte {
	data, _ := json.Marshal(hub.Event{Type: eventConnected, Payload: gin.H{"user_id": userID}})
	return data
}

// Stream godoc
// @Summary      Open the live event stream
// @Description  Server-sent events carrying new messages and connection requests. A new stream replaces the user's previous live channel. EventSource clients pass the token as a query parameter.
// @Tags         live
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        token  query  string  false  "Bearer token for clients that cannot set headers"
// @Success      200
// @Failure      503  {object}  ErrorResponse "Server shutting down"
// @Router       /messages/stream [get]
func (h *Handler) Stream(c *gin.Context) {
	userID := currentUser(c)
	client := make(hub.Client, h.bufferSize())
	if !h.Live.Register(userID, client) {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Server is shutting down", Code: "shutting_down"})
		return
	}
	defer h.Live.Unregister(userID, client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(h.heartbeat())
	defer heartbeat.Stop()

	first := true
	c.Stream(func(w io.Writer) bool {
		if first {
			first = false
			fmt.Fprintf(w, "data: %s\n\n", connectedEvent(userID))
			return true
		}
		select {
		case <-c.Request.Context().Done():
			return false
		case data, ok := <-client:
			if !ok {
				// Replaced by a newer channel or shut down.
				return false
			}
			_, err := fmt.Fprintf(w, "data: %s\n\n", data)
			return err == nil
		case <-heartbeat.C:
			_, err := io.WriteString(w, ": ping\n\n")
			return err == nil
		}
	})
}

// Socket godoc
// @Summary      Open the live event websocket
// @Description  Same events as the stream endpoint, delivered as websocket text frames.
// @Tags         live
// @Security     BearerAuth
// @Param        token  query  string  false  "Bearer token for clients that cannot set headers"
// @Success      101
// @Router       /messages/ws [get]
func (h *Handler) Socket(c *gin.Context) {
	userID := currentUser(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger().WithError(err).WithField("user_id", userID).Debug("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	client := make(hub.Client, h.bufferSize())
	if !h.Live.Register(userID, client) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		return
	}
	defer h.Live.Unregister(userID, client)

	pongWait := 2 * h.heartbeat()
	conn.SetReadLimit(maxInboundSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Inbound frames are ignored; reading detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(h.heartbeat())
	defer ping.Stop()

	if err := h.writeFrame(conn, connectedEvent(userID)); err != nil {
		return
	}
	for {
		select {
		case <-closed:
			return
		case data, ok := <-client:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced"),
					time.Now().Add(writeWait))
				return
			}
			if err := h.writeFrame(conn, data); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, data []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
