package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/creatorkit/server/internal/port/outbound"
	"github.com/creatorkit/server/internal/utils/errors"
	"github.com/creatorkit/server/internal/utils/logger"
	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the header for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the store.
	IdempotencyReplayedHeader = "Idempotency-Replayed"

	defaultIdempotencyTTL = 10 * time.Minute
	idempotencyLockTTL    = 2 * time.Minute
)

// IdempotencyConfig holds idempotency middleware configuration.
type IdempotencyConfig struct {
	// TTL is how long a completed response is replayed.
	TTL time.Duration
	// Logger receives store errors. Optional.
	Logger *logger.Logger
}

// idempotencyResponse stores the cached response.
type idempotencyResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// idempotencyResponseWriter wraps gin.ResponseWriter to capture the response.
type idempotencyResponseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the first 2xx response for a repeated Idempotency-Key,
// so a client retry never runs (or charges) a generation twice. Keys are
// scoped by caller and route. A retry that arrives while the first attempt is
// still running gets 409. Failed attempts are not stored and may be retried.
// A nil store disables the middleware.
func Idempotency(store outbound.IdempotencyStorePort, cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if store == nil || key == "" || c.Request.Method != "POST" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		storeKey := idempotencyStoreKey(c, key)

		if data, err := store.Load(ctx, storeKey); err == nil && data != nil {
			var cached idempotencyResponse
			if json.Unmarshal(data, &cached) == nil {
				c.Header(IdempotencyReplayedHeader, "true")
				c.Data(cached.StatusCode, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		}

		locked, err := store.Reserve(ctx, storeKey, idempotencyLockTTL)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("idempotency store unavailable", logger.Err(err))
			}
			c.Next()
			return
		}
		if !locked {
			appErr := errors.Conflict("A request with this idempotency key is already being processed")
			c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
			return
		}
		// The request context may be canceled by the time we clean up.
		defer func() { _ = store.Release(context.WithoutCancel(ctx), storeKey) }()

		w := &idempotencyResponseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		status := w.Status()
		if status < 200 || status >= 300 {
			return
		}
		data, err := json.Marshal(&idempotencyResponse{
			StatusCode:  status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		})
		if err == nil {
			err = store.Save(context.WithoutCancel(ctx), storeKey, data, cfg.TTL)
		}
		if err != nil && cfg.Logger != nil {
			cfg.Logger.Warn("idempotency response not saved", logger.Err(err))
		}
	}
}

// idempotencyStoreKey scopes key to the caller and route.
func idempotencyStoreKey(c *gin.Context, key string) string {
	hash := sha256.Sum256([]byte(userOrIPKey(c) + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key))
	return hex.EncodeToString(hash[:])
}
