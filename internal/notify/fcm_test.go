package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type captureTransport struct {
	req    *http.Request
	body   []byte
	status int
	reply  string
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.req = req
	t.body, _ = io.ReadAll(req.Body)
	_ = req.Body.Close()

	status := t.status
	if status == 0 {
		status = http.StatusOK
	}
	reply := t.reply
	if reply == "" {
		reply = `{}`
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(reply)),
		Header:     make(http.Header),
	}, nil
}

func testSender(rt http.RoundTripper) *FCMSender {
	return &FCMSender{
		projectID:   "pid",
		tokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "token"}),
		client:      &http.Client{Transport: rt},
		endpoint:    "https://fcm.test",
	}
}

func TestFCMSenderSend(t *testing.T) {
	rt := &captureTransport{}
	err := testSender(rt).Send(context.Background(), "device-1", Message{
		Data:         map[string]string{"type": "connection_request"},
		Notification: &Notification{Title: "New connection request", Body: "alice wants to connect with you."},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://fcm.test/v1/projects/pid/messages:send", rt.req.URL.String())
	assert.Equal(t, "Bearer token", rt.req.Header.Get("Authorization"))

	var payload struct {
		Message struct {
			Token        string            `json:"token"`
			Data         map[string]string `json:"data"`
			Notification Notification      `json:"notification"`
			Android      struct {
				Priority string `json:"priority"`
			} `json:"android"`
		} `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rt.body, &payload))
	assert.Equal(t, "device-1", payload.Message.Token)
	assert.Equal(t, "connection_request", payload.Message.Data["type"])
	assert.Equal(t, "New connection request", payload.Message.Notification.Title)
	assert.Equal(t, "HIGH", payload.Message.Android.Priority)
}

func TestFCMSenderUnregisteredToken(t *testing.T) {
	rt := &captureTransport{
		status: http.StatusNotFound,
		reply:  `{"error":{"status":"NOT_FOUND","message":"Requested entity was not found.","details":[{"@type":"type.googleapis.com/google.firebase.fcm.v1.FcmError","errorCode":"UNREGISTERED"}]}}`,
	}
	err := testSender(rt).Send(context.Background(), "device-1", Message{})
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestFCMSenderOtherFailure(t *testing.T) {
	rt := &captureTransport{status: http.StatusInternalServerError, reply: `{"error":{"status":"INTERNAL","message":"boom"}}`}
	err := testSender(rt).Send(context.Background(), "device-1", Message{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidToken))
	assert.Contains(t, err.Error(), "boom")
}

func TestFCMSenderRequiresToken(t *testing.T) {
	assert.Error(t, testSender(&captureTransport{}).Send(context.Background(), " ", Message{}))
}
