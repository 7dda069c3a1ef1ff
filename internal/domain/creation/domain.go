package creation

import (
	"context"
	"fmt"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/inbound"
	"github.com/creatorkit/server/internal/port/outbound"
	"go.uber.org/zap"
)

const (
	// DefaultListLimit applies when a listing asks for no limit.
	DefaultListLimit = 100
	// MaxListLimit bounds any listing.
	MaxListLimit = 500
)

// Domain implements the creation store and the like toggle.
type Domain struct {
	creationDB outbound.CreationDatabasePort
	logger     *zap.Logger
}

// NewCreationDomain creates a new creation domain service.
func NewCreationDomain(creationDB outbound.CreationDatabasePort, logger *zap.Logger) *Domain {
	return &Domain{
		creationDB: creationDB,
		logger:     logger,
	}
}

// Compile-time interface check
var _ inbound.CreationDomain = (*Domain)(nil)

// --- Store Operations ---

// Append inserts a new creation. It is the only write path for new rows.
func (d *Domain) Append(ctx context.Context, c *model.Creation) (int64, error) {
	if c == nil || !c.Type.IsValid() || c.Content == "" {
		return 0, ErrInvalidCreation
	}
	c.UserID = model.NormalizeUserID(c.UserID)
	if c.UserID == "" {
		return 0, ErrInvalidUser
	}
	if c.Likes == nil {
		c.Likes = []string{}
	}

	if err := d.creationDB.Create(ctx, c); err != nil {
		return 0, fmt.Errorf("append creation: %w", err)
	}
	return c.ID, nil
}

// Get returns a creation by id.
func (d *Domain) Get(ctx context.Context, id int64) (*model.Creation, error) {
	c, err := d.creationDB.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCreationNotFound
	}
	return c, nil
}

// ListByUser returns the user's creations, newest first.
func (d *Domain) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Creation, error) {
	userID = model.NormalizeUserID(userID)
	if userID == "" {
		return nil, ErrInvalidUser
	}
	return d.creationDB.ListByUser(ctx, userID, clampLimit(limit))
}

// ListPublished returns the community feed, newest first.
func (d *Domain) ListPublished(ctx context.Context, limit int) ([]*model.Creation, error) {
	return d.creationDB.ListPublished(ctx, clampLimit(limit))
}

// --- Like Operations ---

// ToggleLike flips userID's membership in the creation's like set. The store
// applies the flip as one conditional update, so concurrent toggles from
// different users are never lost.
func (d *Domain) ToggleLike(ctx context.Context, id int64, userID string) (*model.LikeResult, error) {
	userID = model.NormalizeUserID(userID)
	if userID == "" {
		return nil, ErrInvalidUser
	}

	result, err := d.creationDB.ToggleLike(ctx, id, userID)
	if err != nil {
		d.logger.Warn("toggle like failed",
			zap.Int64("creation_id", id),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	if result == nil {
		return nil, ErrCreationNotFound
	}
	return result, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
