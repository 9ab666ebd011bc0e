package middleware

import (
	"net/http"
	"strconv"

	"github.com/scrollconnect/postpilot/internal/api/response"
	"github.com/scrollconnect/postpilot/internal/repository/redis"
)

// RateLimitMiddleware applies per-client request limits. With no
// authentication layer, the client IP is the limiting key.
type RateLimitMiddleware struct {
	rateLimiter *redis.RateLimiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(rateLimiter *redis.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter}
}

// Limit applies rate limiting based on the remote address
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, remaining, resetTime, err := m.rateLimiter.Allow(r.Context(), r.RemoteAddr)
		if err != nil {
			// If the limiter is down, let the request through.
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.Format("2006-01-02T15:04:05Z"))

		if !allowed {
			response.TooManyRequests(w, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
