package api

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/chromafy/chromafy-server/internal/http/response"
	"github.com/chromafy/chromafy-server/internal/ratelimit"
)

// rateLimitedAuthPaths are the credential endpoints guarded against brute force.
var rateLimitedAuthPaths = map[string]bool{
	"/api/v1/auth/signup": true,
	"/api/v1/auth/login":  true,
}

func isRateLimitedAuthRoute(r *http.Request) bool {
	return r.Method == http.MethodPost && rateLimitedAuthPaths[r.URL.Path]
}

// RateLimitMiddleware rate limits matching requests by client IP.
// Returns 429 Too Many Requests with Retry-After when the limit is exceeded.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger, match func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if match != nil && !match(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := getClientIP(r)
			if !limiter.Allow(key) {
				if logger != nil {
					logger.Warn("Rate limit exceeded",
						"ip", key,
						"path", r.URL.Path,
					)
				}
				response.TooManyRequests(w, limiter.RetryAfter(), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	if ip := extractIP(r.Header.Get("X-Forwarded-For"), r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// extractIP returns the first X-Forwarded-For hop, else X-Real-IP.
func extractIP(xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		first, _, _ := strings.Cut(xForwardedFor, ",")
		return strings.TrimSpace(first)
	}
	return strings.TrimSpace(xRealIP)
}
