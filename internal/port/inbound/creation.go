package inbound

import (
	"context"

	"github.com/creatorkit/server/internal/model"
	"github.com/gin-gonic/gin"
)

// CreationDomain is the creation store and like toggle.
type CreationDomain interface {
	Append(ctx context.Context, creation *model.Creation) (int64, error)
	Get(ctx context.Context, id int64) (*model.Creation, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.Creation, error)
	ListPublished(ctx context.Context, limit int) ([]*model.Creation, error)
	ToggleLike(ctx context.Context, id int64, userID string) (*model.LikeResult, error)
}

// CreationHttpPort defines HTTP handlers for creation listing and likes.
type CreationHttpPort interface {
	ListUserCreations(c *gin.Context)
	ListPublishedCreations(c *gin.Context)
	ToggleLike(c *gin.Context)
}
