package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallsBackToInfo(t *testing.T) {
	logger := NewWithOutput(&bytes.Buffer{}, "chatty", false)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger = NewWithOutput(&bytes.Buffer{}, "debug", true)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var out bytes.Buffer
	logger := NewWithOutput(&out, "info", true)

	r := gin.New()
	r.Use(GinMiddleware(Component(logger, "http")))
	r.GET("/users/:id", func(c *gin.Context) {
		c.Set("userID", "alice")
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/bob", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "/users/:id", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, "alice", entry["user_id"])
	assert.Equal(t, "request", entry["msg"])
}
