package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-redis/redis_rate/v10"

	"github.com/sipas-org/sipas-api/internal/http/respond"
)

const (
	rateLimitLimit     = "X-RateLimit-Limit"
	rateLimitRemaining = "X-RateLimit-Remaining"
	rateLimitReset     = "X-RateLimit-Reset"
	rateLimitRetry     = "Retry-After"
)

// RateLimiter is satisfied by *redis_rate.Limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows perMinute requests per client address for the wrapped
// routes. Limiter errors fail open so a Redis outage does not block logins.
func RateLimit(limiter RateLimiter, prefix string, perMinute int) func(http.Handler) http.Handler {
	limit := redis_rate.PerMinute(perMinute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := prefix + ":" + clientIP(r)
			res, err := limiter.Allow(r.Context(), key, limit)
			if err != nil {
				slog.Error("rate limit check failed", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(rateLimitLimit, strconv.Itoa(perMinute))
			w.Header().Set(rateLimitRemaining, strconv.Itoa(res.Remaining))
			if res.Allowed == 0 {
				seconds := int(res.RetryAfter.Seconds()) + 1
				w.Header().Set(rateLimitRetry, strconv.Itoa(seconds))
				w.Header().Set(rateLimitReset, strconv.Itoa(seconds))
				slog.Info("rate limit exceeded", "key", key)
				respond.Error(w, r, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the request's remote host. chi's RealIP middleware has already
// rewritten RemoteAddr from forwarding headers when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
