package handler

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"pingup/backend/internal/hub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextLine returns the next non-empty line of an event stream.
func nextLine(r *bufio.Reader) (string, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return "", err
		}
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			return line, nil
		}
	}
}

func (self *HandlerTestSuite) openStream(ctx context.Context, srv *httptest.Server, userID string) (*http.Response, *bufio.Reader) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		srv.URL+"/api/v1/messages/stream?token="+self.token(userID), nil)
	require.NoError(self.T(), err)
	resp, err := srv.Client().Do(req)
	require.NoError(self.T(), err)
	require.Equal(self.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(self.T(), "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	line, err := nextLine(r)
	require.NoError(self.T(), err)
	assert.Contains(self.T(), line, `"type":"connected"`)
	return resp, r
}

func (self *HandlerTestSuite) TestStreamDeliversEvents() {
	srv := httptest.NewServer(self.router)
	defer srv.Close()
	ctx, cancel := context.WithCancel(self.ctx)
	defer cancel()

	resp, r := self.openStream(ctx, srv, "bob")
	defer resp.Body.Close()

	require.True(self.T(), self.hub.Push("bob", hub.Event{Type: hub.EventMessage, Payload: gin.H{"text": "hi"}}))
	line, err := nextLine(r)
	require.NoError(self.T(), err)
	require.True(self.T(), strings.HasPrefix(line, "data: "), line)
	assert.JSONEq(self.T(), `{"type":"message","payload":{"text":"hi"}}`, strings.TrimPrefix(line, "data: "))
}

func (self *HandlerTestSuite) TestStreamHeartbeat() {
	self.h.Heartbeat = 20 * time.Millisecond
	srv := httptest.NewServer(self.router)
	defer srv.Close()
	ctx, cancel := context.WithCancel(self.ctx)
	defer cancel()

	resp, r := self.openStream(ctx, srv, "bob")
	defer resp.Body.Close()

	line, err := nextLine(r)
	require.NoError(self.T(), err)
	assert.Equal(self.T(), ": ping", line)
}

func (self *HandlerTestSuite) TestNewStreamReplacesOld() {
	srv := httptest.NewServer(self.router)
	defer srv.Close()
	ctx, cancel := context.WithCancel(self.ctx)
	defer cancel()

	first, _ := self.openStream(ctx, srv, "bob")
	defer first.Body.Close()
	second, r := self.openStream(ctx, srv, "bob")
	defer second.Body.Close()

	// The replaced stream ends.
	_, err := io.ReadAll(first.Body)
	assert.NoError(self.T(), err)

	require.True(self.T(), self.hub.Push("bob", hub.Event{Type: hub.EventMessage, Payload: "x"}))
	line, err := nextLine(r)
	require.NoError(self.T(), err)
	assert.Contains(self.T(), line, `"payload":"x"`)
}

func (self *HandlerTestSuite) TestStreamRefusedAfterShutdown() {
	self.hub.Shutdown()
	w := self.request(http.MethodGet, "/messages/stream", "bob", nil)
	assert.Equal(self.T(), http.StatusServiceUnavailable, w.Code)
}

func (self *HandlerTestSuite) TestSocketDeliversEvents() {
	srv := httptest.NewServer(self.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/messages/ws?token=" + self.token("bob")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(self.T(), err)
	defer conn.Close()

	_, data, err := conn.ReadMessage()
	require.NoError(self.T(), err)
	assert.Contains(self.T(), string(data), `"type":"connected"`)

	require.True(self.T(), self.hub.Push("bob", hub.Event{Type: hub.EventConnectionRequest, Payload: gin.H{"request_id": "r1"}}))
	_, data, err = conn.ReadMessage()
	require.NoError(self.T(), err)
	assert.JSONEq(self.T(), `{"type":"connection_request","payload":{"request_id":"r1"}}`, string(data))

	require.NoError(self.T(), conn.Close())
	assert.Eventually(self.T(), func() bool { return !self.hub.IsConnected("bob") },
		2*time.Second, 10*time.Millisecond)
}
