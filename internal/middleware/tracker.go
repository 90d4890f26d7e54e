package middleware

import (
	"net"
	"net/http"
	"strings"

	"storefront/internal/service"
)

// Tracker records a visit for every storefront page view. Only GET requests
// count as page views; recording failures never affect the response.
func Tracker(visitors service.VisitorService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				_ = visitors.Track(r.Context(), clientIP(r), r.UserAgent(), r.URL.Path)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the originating client address, preferring the first
// entry of X-Forwarded-For when the service sits behind a proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
