package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func() (*gin.Engine, *observer.ObservedLogs) {
		core, logs := observer.New(zap.DebugLevel)
		router := gin.New()
		router.Use(RequestLogger(zap.New(core), "/health"))
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
		router.GET("/ok", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString(ContextRequestIDKey))
		})
		router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
		return router, logs
	}

	t.Run("Success: Generates Request ID", func(t *testing.T) {
		router, logs := setup()

		req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		id := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, id, entries[0].ContextMap()["request_id"])
	})

	t.Run("Success: Keeps Client Request ID", func(t *testing.T) {
		router, _ := setup()

		req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(RequestIDHeader, "client-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("Success: Client Errors Log As Warn", func(t *testing.T) {
		router, logs := setup()

		req, _ := http.NewRequest(http.MethodGet, "/missing", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
	})

	t.Run("Success: Skipped Paths Are Silent", func(t *testing.T) {
		router, logs := setup()

		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		assert.Zero(t, logs.Len())
	})
}
