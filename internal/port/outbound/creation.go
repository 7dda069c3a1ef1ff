package outbound

import (
	"context"

	"github.com/creatorkit/server/internal/model"
)

// CreationDatabasePort defines persistence operations for creations.
type CreationDatabasePort interface {
	// Create inserts a creation and fills in its ID and CreatedAt.
	Create(ctx context.Context, creation *model.Creation) error

	// FindByID returns the creation, or nil if it does not exist.
	FindByID(ctx context.Context, id int64) (*model.Creation, error)

	// ListByUser returns the user's creations, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.Creation, error)

	// ListPublished returns published creations, newest first.
	ListPublished(ctx context.Context, limit int) ([]*model.Creation, error)

	// ToggleLike atomically adds userID to, or removes it from, the like set.
	// Returns nil if the creation does not exist.
	ToggleLike(ctx context.Context, id int64, userID string) (*model.LikeResult, error)
}

// TransactorPort runs a function inside a single store transaction.
// Database ports called with the context passed to fn join the transaction.
type TransactorPort interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
