package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// incrementUsageSQL is an increment-and-check in one statement. A row from an
// earlier period restarts at one; a row already at the limit is left alone
// and no row is returned.
const incrementUsageSQL = `
INSERT INTO user_usages (user_id, period, free_usage_count, updated_at)
VALUES (@user, @period, 1, NOW())
ON CONFLICT (user_id) DO UPDATE SET
    free_usage_count = CASE
        WHEN user_usages.period = EXCLUDED.period THEN user_usages.free_usage_count + 1
        ELSE 1
    END,
    period = EXCLUDED.period,
    updated_at = EXCLUDED.updated_at
WHERE user_usages.period <> EXCLUDED.period
   OR user_usages.free_usage_count < @limit
RETURNING free_usage_count`

// usageAdapter implements outbound.UsageDatabasePort.
type usageAdapter struct {
	db *gorm.DB
}

// NewUsageAdapter creates a new usage database adapter.
func NewUsageAdapter(db *gorm.DB) outbound.UsageDatabasePort {
	return &usageAdapter{db: db}
}

func (a *usageAdapter) Get(ctx context.Context, userID string) (*model.UserUsage, error) {
	var usage model.UserUsage
	err := conn(ctx, a.db).First(&usage, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &usage, nil
}

func (a *usageAdapter) Increment(ctx context.Context, userID, period string, limit int) (int, error) {
	var count int
	result := conn(ctx, a.db).
		Raw(incrementUsageSQL, sql.Named("user", userID), sql.Named("period", period), sql.Named("limit", limit)).
		Scan(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, outbound.ErrUsageLimitReached
	}
	return count, nil
}

func (a *usageAdapter) Set(ctx context.Context, userID, period string, count int) error {
	usage := &model.UserUsage{
		UserID:         userID,
		Period:         period,
		FreeUsageCount: count,
		UpdatedAt:      time.Now().UTC(),
	}
	return conn(ctx, a.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"period", "free_usage_count", "updated_at"}),
	}).Create(usage).Error
}

var _ outbound.UsageDatabasePort = (*usageAdapter)(nil)
