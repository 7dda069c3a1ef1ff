// Package usage commits accepted free-tier generations to the per-user store.
package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creatorkit/server/internal/domain/entitlement"
	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
	"go.uber.org/zap"
)

// ErrQuotaRaceLost means another request consumed the last free generation
// between the gate decision and the commit.
var ErrQuotaRaceLost = errors.New("free usage limit reached by a concurrent request")

// Recorder writes gate decisions back to the usage store.
type Recorder struct {
	usageDB outbound.UsageDatabasePort
	limit   int
	now     func() time.Time
	logger  *zap.Logger
}

// NewRecorder creates a usage recorder guarding the given free limit.
func NewRecorder(usageDB outbound.UsageDatabasePort, limit int, logger *zap.Logger) *Recorder {
	if limit <= 0 {
		limit = entitlement.FreeLimit
	}
	return &Recorder{
		usageDB: usageDB,
		limit:   limit,
		now:     time.Now,
		logger:  logger,
	}
}

// Commit records one accepted generation for userID and returns the stored
// count. The store applies it as a conditional increment, so two concurrent
// requests cannot both take the last free slot. nextUsageCount is the gate's
// expectation and is only compared for diagnostics.
func (r *Recorder) Commit(ctx context.Context, userID string, nextUsageCount int) (int, error) {
	period := model.UsagePeriod(r.now())

	stored, err := r.usageDB.Increment(ctx, userID, period, r.limit)
	if errors.Is(err, outbound.ErrUsageLimitReached) {
		return 0, ErrQuotaRaceLost
	}
	if err != nil {
		return 0, fmt.Errorf("commit usage: %w", err)
	}

	if stored != nextUsageCount {
		r.logger.Warn("usage count differs from gate decision",
			zap.String("user_id", userID),
			zap.String("period", period),
			zap.Int("expected", nextUsageCount),
			zap.Int("stored", stored),
		)
	}
	return stored, nil
}
