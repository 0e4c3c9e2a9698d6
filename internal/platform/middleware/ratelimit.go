package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fundsight/internal/platform/config"
	"fundsight/internal/platform/redis"
	"fundsight/pkg/requestcontext"
)

// RateLimiter applies a fixed-window per-IP limit backed by Redis. When
// Redis is unreachable the limiter fails open: degraded limiting beats a
// hard outage for a read-only API.
type RateLimiter struct {
	client *redis.Client
	cfg    config.RateLimit
	logger *slog.Logger
}

func NewRateLimiter(client *redis.Client, cfg config.RateLimit, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{client: client, cfg: cfg, logger: logger}
}

// Handler enforces the limit for every request passing through.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)

		window := time.Now().Unix() / int64(l.cfg.Window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", ip, window)

		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			l.logger.WarnContext(ctx, "rate limit check failed, allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := l.client.Expire(ctx, key, l.cfg.Window).Err(); err != nil {
				l.logger.WarnContext(ctx, "rate limit expire failed", "error", err)
			}
		}

		remaining := int64(l.cfg.Requests) - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Requests))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(l.cfg.Requests) {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.cfg.Window.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limit_exceeded"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
