package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// counter is the part of a redis client the limiter needs
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewRedisClient connects to Redis and checks the connection
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// RateLimit allows limit requests per minute per client IP and route.
// A nil client disables limiting, and Redis errors let the request through.
func RateLimit(rdb counter, limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("⚠️ rate limit check failed: %v", err)
			c.Next()
			return
		}

		// Start the window on the first hit. A key left without a TTL would
		// block the client for good, so drop it when the expiry fails.
		if count == 1 {
			if err := rdb.Expire(ctx, key, time.Minute).Err(); err != nil {
				log.Printf("⚠️ rate limit window not started: %v", err)
				if err := rdb.Del(ctx, key).Err(); err != nil {
					log.Printf("⚠️ rate limit key %s left without expiry: %v", key, err)
				}
			}
		}

		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "Rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
