package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitMiddleware counts requests per window in redis. Players are keyed
// by device_id when they send one so devices behind one NAT do not share a
// budget. A redis outage lets requests through.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit <= 0 {
			return c.Next()
		}

		subject := c.Query("device_id")
		if subject == "" {
			subject = c.IP()
		}
		key := fmt.Sprintf("rl:%s:%s", c.Path(), subject)

		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Debug("rate limit check failed", zap.String("key", key), zap.Error(err))
			return c.Next() // fail open
		}

		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}

		return c.Next()
	}
}
