package inbound

import (
	"context"

	"github.com/creatorkit/server/internal/model"
	"github.com/gin-gonic/gin"
)

// GenerationDomain runs the entitlement-gated generation pipeline.
type GenerationDomain interface {
	// Generate runs one generation for caller. Every error it returns is a
	// *generation.Failure.
	Generate(ctx context.Context, caller *model.Caller, kind model.GenerationKind, in *model.GenerationInput) (*model.GenerationResult, error)
}

// GenerationHttpPort defines HTTP handlers for the generation endpoints.
type GenerationHttpPort interface {
	GenerateArticle(c *gin.Context)
	GenerateBlogTitle(c *gin.Context)
	GenerateImage(c *gin.Context)
	RemoveBackground(c *gin.Context)
	RemoveObject(c *gin.Context)
	ReviewResume(c *gin.Context)
}
