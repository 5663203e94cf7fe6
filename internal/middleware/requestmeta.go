// Package middleware carries the pre-routing request checks: client
// metadata capture and the blacklist gate.
package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/serroba/url-shorter/internal/handlers"
)

// RequestMeta is router-level middleware that captures the client host,
// port and user agent into the request context, so handlers can record
// usage events without touching transport details.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, port := clientAddr(r)

		meta := handlers.RequestMeta{
			Host:      host,
			Port:      port,
			UserAgent: r.Header.Get("User-Agent"),
		}

		next.ServeHTTP(w, r.WithContext(handlers.ContextWithRequestMeta(r.Context(), meta)))
	})
}

// clientAddr extracts the client host and port, honoring proxy headers.
// Proxied requests lose the original port; it comes back as 0.
func clientAddr(r *http.Request) (string, int) {
	// X-Forwarded-For may carry a chain; the first entry is the client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if idx := strings.Index(xff, ","); idx != -1 {
			first = xff[:idx]
		}

		return strings.TrimSpace(first), 0
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri, 0
	}

	host, portStr, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr, 0
	}

	port, _ := strconv.Atoi(portStr)

	return host, port
}
