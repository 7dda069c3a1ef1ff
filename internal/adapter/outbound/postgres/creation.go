package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/outbound"
	"gorm.io/gorm"
)

// toggleLikeSQL flips membership in a single statement. Concurrent toggles on
// the same row queue on the row lock and each sees the previous result.
const toggleLikeSQL = `
UPDATE creations
SET likes = CASE
        WHEN @user = ANY(likes) THEN array_remove(likes, @user)
        ELSE array_append(likes, @user)
    END
WHERE id = @id
RETURNING (@user = ANY(likes)) AS liked, cardinality(likes) AS like_count`

// creationAdapter implements outbound.CreationDatabasePort.
type creationAdapter struct {
	db *gorm.DB
}

// NewCreationAdapter creates a new creation database adapter.
func NewCreationAdapter(db *gorm.DB) outbound.CreationDatabasePort {
	return &creationAdapter{db: db}
}

func (a *creationAdapter) Create(ctx context.Context, creation *model.Creation) error {
	return conn(ctx, a.db).Create(creation).Error
}

func (a *creationAdapter) FindByID(ctx context.Context, id int64) (*model.Creation, error) {
	var creation model.Creation
	err := conn(ctx, a.db).First(&creation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &creation, nil
}

func (a *creationAdapter) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Creation, error) {
	var creations []*model.Creation
	err := conn(ctx, a.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&creations).Error
	return creations, err
}

func (a *creationAdapter) ListPublished(ctx context.Context, limit int) ([]*model.Creation, error) {
	var creations []*model.Creation
	err := conn(ctx, a.db).
		Where("publish = ?", true).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&creations).Error
	return creations, err
}

func (a *creationAdapter) ToggleLike(ctx context.Context, id int64, userID string) (*model.LikeResult, error) {
	var row struct {
		Liked     bool
		LikeCount int
	}
	result := conn(ctx, a.db).
		Raw(toggleLikeSQL, sql.Named("user", userID), sql.Named("id", id)).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &model.LikeResult{Liked: row.Liked, LikeCount: row.LikeCount}, nil
}

// Compile-time interface checks
var (
	_ outbound.CreationDatabasePort = (*creationAdapter)(nil)
	_ outbound.TransactorPort       = (*transactor)(nil)
)
