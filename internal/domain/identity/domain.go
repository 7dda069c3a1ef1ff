// Package identity resolves callers and their free-tier entitlement.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/creatorkit/server/internal/domain/entitlement"
	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/inbound"
	"github.com/creatorkit/server/internal/port/outbound"
	"go.uber.org/zap"
)

// Domain errors for identity.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrUsageLookup    = errors.New("could not load usage")
	ErrInvalidCount   = errors.New("usage count must be between 0 and the free limit")
)

// Domain resolves session tokens into callers.
type Domain struct {
	sessions outbound.SessionVerifierPort
	usageDB  outbound.UsageDatabasePort
	limit    int
	now      func() time.Time
	logger   *zap.Logger
}

// NewIdentityDomain creates a new identity domain service.
func NewIdentityDomain(
	sessions outbound.SessionVerifierPort,
	usageDB outbound.UsageDatabasePort,
	limit int,
	logger *zap.Logger,
) *Domain {
	if limit <= 0 {
		limit = entitlement.FreeLimit
	}
	return &Domain{
		sessions: sessions,
		usageDB:  usageDB,
		limit:    limit,
		now:      time.Now,
		logger:   logger,
	}
}

// Compile-time interface check
var _ inbound.IdentityDomain = (*Domain)(nil)

// Resolve verifies the token and loads the caller's usage for the current
// calendar month. Usage recorded in an earlier month reads as zero; nothing
// else resets it. Premium callers skip the usage lookup.
func (d *Domain) Resolve(ctx context.Context, sessionToken string) (*model.Caller, error) {
	sessionToken = strings.TrimSpace(sessionToken)
	if sessionToken == "" {
		return nil, ErrAuthentication
	}

	claims, err := d.sessions.Verify(sessionToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	userID := model.NormalizeUserID(claims.UserID)
	if userID == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrAuthentication)
	}

	caller := &model.Caller{
		UserID:  userID,
		Plan:    claims.Plan,
		Period:  model.UsagePeriod(d.now()),
		IsAdmin: claims.IsAdmin,
	}
	if caller.Plan.IsPremium() {
		return caller, nil
	}

	row, err := d.usageDB.Get(ctx, userID)
	if err != nil {
		d.logger.Error("load usage failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUsageLookup, err)
	}
	caller.FreeUsageCount = row.CountIn(caller.Period)

	return caller, nil
}

// SetUsage overwrites the user's free usage for the current period.
func (d *Domain) SetUsage(ctx context.Context, userID string, count int) error {
	userID = model.NormalizeUserID(userID)
	if userID == "" {
		return ErrAuthentication
	}
	if count < 0 || count > d.limit {
		return ErrInvalidCount
	}
	period := model.UsagePeriod(d.now())
	if err := d.usageDB.Set(ctx, userID, period, count); err != nil {
		return fmt.Errorf("set usage: %w", err)
	}
	d.logger.Info("usage overwritten",
		zap.String("user_id", userID),
		zap.String("period", period),
		zap.Int("count", count),
	)
	return nil
}

// FreeLimit returns the per-period free generation limit.
func (d *Domain) FreeLimit() int {
	return d.limit
}
