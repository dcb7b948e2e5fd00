package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/tendant/idm-console/pkg/client"
	"github.com/tendant/idm-console/pkg/config"
)

// Middleware answers 429 once a caller runs out of tokens. Callers are the
// authenticated operator when client.AuthUserMiddleware ran before it, and
// the client IP otherwise.
type Middleware struct {
	limiter *RateLimiter
	burst   int
}

// NewMiddleware returns nil when rate limiting is disabled; Handler on a nil
// Middleware passes requests through.
func NewMiddleware(cfg config.RateLimitConfig) *Middleware {
	if !cfg.Enabled {
		return nil
	}
	return &Middleware{
		limiter: NewRateLimiter(cfg.Burst, cfg.PerSecond),
		burst:   cfg.Burst,
	}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := callerKey(r)
		if !m.limiter.Allow(key) {
			slog.Warn("Rate limit exceeded", "caller", key, "method", r.Method, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, map[string]string{
				"code":    "RATE_LIMITED",
				"message": "Too many requests. Please try again later.",
			})
			return
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(m.burst))
		next.ServeHTTP(w, r)
	})
}

// Limiter exposes the underlying limiter, e.g. to prune it periodically.
func (m *Middleware) Limiter() *RateLimiter {
	if m == nil {
		return nil
	}
	return m.limiter
}

func callerKey(r *http.Request) string {
	if user := client.GetAuthUser(r); user != nil {
		return "user:" + user.UserId
	}
	return "ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
