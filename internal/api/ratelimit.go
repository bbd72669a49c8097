package api

import (
	"net"
	"net/http"

	"github.com/shelftalk/shelftalk-server/internal/ratelimit"
)

// Submission throttle per client address. Generous enough for a person
// working through a stack of books, tight enough to blunt form spam.
const (
	submitRPS   = 5
	submitBurst = 20
)

// rateLimitMiddleware limits mutating requests by client IP.
// Returns 429 Too Many Requests when the limit is exceeded.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		if !s.submitLimiter.Allow(key) {
			s.logger.Warn("Rate limit exceeded", "ip", key, "path", r.URL.Path)
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey extracts the client address used as the rate limit key.
// RealIP middleware has already folded forwarding headers into RemoteAddr.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func newSubmitLimiter() *ratelimit.KeyedLimiter {
	return ratelimit.New(submitRPS, submitBurst)
}
