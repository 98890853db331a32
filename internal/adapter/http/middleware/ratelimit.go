package middleware

import (
	"fmt"
	"strconv"
	"time"

	redisStore "dhandhan-quiz-backend/internal/adapter/storage/redis"
	"dhandhan-quiz-backend/pkg/apperror"
	"dhandhan-quiz-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a fixed-window rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the per-group limits. Login and registration
// are throttled against PIN guessing; game starts against farming bots.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"auth_login":    {Limit: 10, Window: time.Minute},
		"auth_register": {Limit: 5, Window: time.Hour},
		"game_start":    {Limit: 10, Window: time.Minute},
		"wallet":        {Limit: 60, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for an endpoint group.
// Store errors fail open: a broken Redis must not lock players out.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimited())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier prefers the authenticated account over the client IP.
func extractIdentifier(c *gin.Context) string {
	if key := c.GetString(CtxAccountKey); key != "" {
		return key
	}
	return c.ClientIP()
}
