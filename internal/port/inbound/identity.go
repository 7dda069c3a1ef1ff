package inbound

import (
	"context"

	"github.com/creatorkit/server/internal/model"
	"github.com/gin-gonic/gin"
)

// IdentityDomain resolves callers and manages their usage metadata.
type IdentityDomain interface {
	// Resolve verifies a session token and loads the caller's entitlement.
	Resolve(ctx context.Context, sessionToken string) (*model.Caller, error)

	// SetUsage overwrites the caller's free usage for the current period.
	SetUsage(ctx context.Context, userID string, count int) error

	// FreeLimit returns the per-period free generation limit.
	FreeLimit() int
}

// UsageHttpPort defines HTTP handlers for usage status and administration.
type UsageHttpPort interface {
	GetUsage(c *gin.Context)
	ResetUsage(c *gin.Context)
}
