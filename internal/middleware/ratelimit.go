package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const issueLimitPrefix = "ratelimit:issues"

// IssueRateLimit caps how many issues one user may submit per window. The counter lives in
// Redis; without Redis, or when Redis errors, requests pass through.
func IssueRateLimit(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if rdb == nil || limit <= 0 || user == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := issueLimitPrefix + ":" + user.ID.String()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("Rate limiter unavailable, allowing request: %v", err)
			return c.Next()
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Printf("Failed to set rate limit window for %s: %v", key, err)
			}
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, key).Result()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":        "RATE_LIMITED",
				"message":     "Daily issue limit reached",
				"retry_after": int64(retryAfter.Seconds()),
			})
		}

		return c.Next()
	}
}
