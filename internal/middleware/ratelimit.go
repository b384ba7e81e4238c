package middleware

import (
	"context"
	"strconv"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/httpx"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter counts requests per client IP and route in fixed Redis windows.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	log    *zap.Logger
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration, log *zap.Logger) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window, log: log}
}

// Handler passes everything through when Redis is not configured or the limit is 0.
// Redis failures fail open.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.client == nil || l.limit <= 0 {
			c.Next()
			return
		}

		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
		count, ttl, err := l.hit(c.Request.Context(), key)
		if err != nil {
			l.log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		remaining := l.limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))

		if int(count) > l.limit {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			httpx.Fail(c, apperr.RateLimited("Too many requests, please try again later"))
			return
		}
		c.Next()
	}
}

// hit counts one request against key. The window starts with the first request and
// is never extended by later ones.
func (l *RateLimiter) hit(ctx context.Context, key string) (int64, time.Duration, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	left := ttl.Val()
	if left <= 0 {
		left = l.window
	}
	return incr.Val(), left, nil
}
