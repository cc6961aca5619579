package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// UseRedis sets the client shared by the Redis limiters. With a nil client
// they let every request through.
func UseRedis(client *redis.Client) {
	redisClient = client
}

// RedisRateLimit implements a simple fixed-window rate limiter using Redis INCR/EXPIRE.
// key format: rl:<window_seconds>:<client ip>
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		fixedWindow(c, key, c.FullPath(), maxRequests, window, "rate limit exceeded")
	}
}

// PlayRateLimit limits how many rounds a player may start per window. It
// keys on the profile id, so JWT must run first.
func PlayRateLimit(maxRounds int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Header("X-PlayRateLimit-Limit", strconv.Itoa(maxRounds))
		key := "play_rl:" + userID.String() + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		fixedWindow(c, key, "play:"+c.FullPath(), maxRounds, window, "play rate limit exceeded")
	}
}

func fixedWindow(c *gin.Context, key, endpoint string, limit int, window time.Duration, msg string) {
	if redisClient == nil {
		// Redis not configured, fail-open
		c.Next()
		return
	}

	ctx := c.Request.Context()
	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		// on Redis error, fail-open (allow) but set header
		c.Header("X-RateLimit-Error", "redis-error")
		c.Next()
		return
	}
	if val == 1 {
		redisClient.Expire(ctx, key, window)
	}

	c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(limit)-val), 10))

	if val > int64(limit) {
		RLBlocked.WithLabelValues(endpoint).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       msg,
			"retry_after": int(window.Seconds()),
		})
		return
	}

	RLRequests.WithLabelValues(endpoint).Inc()
	c.Next()
}
