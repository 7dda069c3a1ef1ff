package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/creatorkit/server/internal/model"
)

// ErrInvalidSession is returned when a session token cannot be verified.
var ErrInvalidSession = errors.New("invalid session")

// ErrUsageLimitReached is returned by UsageDatabasePort.Increment when the
// stored count is already at the limit for the period.
var ErrUsageLimitReached = errors.New("usage limit reached")

// SessionClaims are the verified facts carried by a session token.
type SessionClaims struct {
	UserID    string
	Plan      model.Plan
	IsAdmin   bool
	ExpiresAt time.Time
}

// SessionVerifierPort verifies caller session tokens.
type SessionVerifierPort interface {
	// Verify validates the token signature and expiry and returns its claims.
	// Any failure wraps ErrInvalidSession.
	Verify(token string) (*SessionClaims, error)
}

// UsageDatabasePort is the per-user metadata store backing the free quota.
type UsageDatabasePort interface {
	// Get returns the usage row for userID, or nil if the user has none.
	Get(ctx context.Context, userID string) (*model.UserUsage, error)

	// Increment adds one to the count for period, rolling an older period over
	// to a fresh count of one. The update only applies while the stored count
	// for period is below limit; otherwise it returns ErrUsageLimitReached.
	// It returns the stored count after the update.
	Increment(ctx context.Context, userID, period string, limit int) (int, error)

	// Set overwrites the count for period.
	Set(ctx context.Context, userID, period string, count int) error
}
