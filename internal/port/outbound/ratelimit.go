package outbound

import (
	"context"
	"time"
)

// RateLimiterPort defines rate limiting operations.
type RateLimiterPort interface {
	// Allow checks if a request is allowed under rate limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// AllowN checks if N requests are allowed.
	AllowN(ctx context.Context, key string, n int, limit int, window time.Duration) (bool, error)

	// GetRemaining returns the remaining requests in the current window.
	GetRemaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}

// IdempotencyStorePort records client-supplied idempotency keys and the
// responses they produced.
type IdempotencyStorePort interface {
	// Reserve claims key for ttl. It reports false when the key is already held.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a key so the request can be retried.
	Release(ctx context.Context, key string) error

	// Load returns the response saved under key, or nil if there is none.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores the response for key for ttl.
	Save(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
