package security

import (
	"cyberar_admin_backend/pkg/logger"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisRateLimiter counts requests per IP in fixed windows shared by every
// instance. Redis failures let the request through.
func RedisRateLimiter(rdb *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	if window < time.Second {
		window = time.Second
	}
	windowSeconds := int64(window / time.Second)

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		slot := time.Now().Unix() / windowSeconds
		key := "ratelimit:" + c.ClientIP() + ":" + strconv.FormatInt(slot, 10)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if incr.Val() > int64(maxRequests) {
			rejectTooMany(c, window-time.Duration(time.Now().Unix()%windowSeconds)*time.Second)
			return
		}

		c.Next()
	}
}
