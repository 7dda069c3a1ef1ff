package middleware

import (
	"strconv"
	"time"

	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/creatorkit/server/internal/utils/errors"
	"github.com/creatorkit/server/internal/utils/logger"
	"github.com/creatorkit/server/internal/utils/requestctx"
	"github.com/gin-gonic/gin"
)

const (
	// RateLimitRemaining is the header for remaining requests.
	RateLimitRemaining = "X-RateLimit-Remaining"
	// RateLimitLimit is the header for the limit.
	RateLimitLimit = "X-RateLimit-Limit"
	// RetryAfter is the header for retry time.
	RetryAfter = "Retry-After"
)

// RateLimitConfig holds rate limit configuration.
type RateLimitConfig struct {
	// Limit is the maximum number of requests.
	Limit int
	// Window is the time window.
	Window time.Duration
	// KeyFunc generates the rate limit key from request.
	// Default uses the resolved caller, falling back to client IP.
	KeyFunc func(*gin.Context) string
	// OnLimited is called for every rejected request.
	OnLimited func()
	// Logger receives limiter backend errors. Optional.
	Logger *logger.Logger
}

// RateLimit returns a middleware that limits requests using the given limiter.
// A nil limiter disables limiting. Backend errors let the request through.
func RateLimit(limiter outbound.RateLimiterPort, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = userOrIPKey
	}

	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)
		ctx := c.Request.Context()

		allowed, err := limiter.Allow(ctx, key, cfg.Limit, cfg.Window)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("rate limiter unavailable", "key", key, logger.Err(err))
			}
			c.Next()
			return
		}

		remaining, _ := limiter.GetRemaining(ctx, key, cfg.Limit, cfg.Window)
		c.Header(RateLimitLimit, strconv.Itoa(cfg.Limit))
		c.Header(RateLimitRemaining, strconv.Itoa(remaining))

		if !allowed {
			if cfg.OnLimited != nil {
				cfg.OnLimited()
			}
			c.Header(RetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			appErr := errors.RateLimited("Too many requests, please try again later")
			c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
			return
		}

		c.Next()
	}
}

// userOrIPKey keys by the authenticated caller when one is present.
func userOrIPKey(c *gin.Context) string {
	if caller := requestctx.Caller(c.Request.Context()); caller != nil {
		return "user:" + caller.UserID
	}
	return "ip:" + c.ClientIP()
}
