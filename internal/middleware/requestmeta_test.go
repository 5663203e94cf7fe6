package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serroba/url-shorter/internal/handlers"
	"github.com/serroba/url-shorter/internal/middleware"
)

func serveWithMeta(t *testing.T, req *http.Request) handlers.RequestMeta {
	t.Helper()

	var meta handlers.RequestMeta

	handler := middleware.RequestMeta(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta = handlers.RequestMetaFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	return meta
}

func TestRequestMeta(t *testing.T) {
	t.Run("captures host and port from the remote address", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:54321"
		req.Header.Set("User-Agent", "TestAgent/1.0")

		meta := serveWithMeta(t, req)

		assert.Equal(t, "192.0.2.1", meta.Host)
		assert.Equal(t, 54321, meta.Port)
		assert.Equal(t, "TestAgent/1.0", meta.UserAgent)
	})

	t.Run("prefers the first X-Forwarded-For entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1111"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1, 172.16.0.1")

		meta := serveWithMeta(t, req)

		assert.Equal(t, "203.0.113.7", meta.Host)
		assert.Equal(t, 0, meta.Port)
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1111"
		req.Header.Set("X-Real-IP", "203.0.113.9")

		meta := serveWithMeta(t, req)

		assert.Equal(t, "203.0.113.9", meta.Host)
		assert.Equal(t, 0, meta.Port)
	})

	t.Run("keeps a portless remote address as is", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1"

		meta := serveWithMeta(t, req)

		assert.Equal(t, "192.0.2.1", meta.Host)
		assert.Equal(t, 0, meta.Port)
	})

	t.Run("missing user agent stays empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"

		meta := serveWithMeta(t, req)

		assert.Empty(t, meta.UserAgent)
	})
}
