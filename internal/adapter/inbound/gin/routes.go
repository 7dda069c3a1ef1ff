package gin

import (
	"github.com/creatorkit/server/internal/port/inbound"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP ports mounted under /api.
type Handlers struct {
	Generation inbound.GenerationHttpPort
	Creation   inbound.CreationHttpPort
	Usage      inbound.UsageHttpPort
}

// RouteOptions holds the middleware applied per route group.
type RouteOptions struct {
	// Auth resolves the caller. Every route below requires it.
	Auth gin.HandlerFunc
	// Generation runs after Auth on /ai routes only, e.g. rate limiting
	// and idempotency.
	Generation []gin.HandlerFunc
}

// RegisterRoutes mounts every API route on api.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, opts RouteOptions) {
	protected := api.Group("")
	if opts.Auth != nil {
		protected.Use(opts.Auth)
	}

	ai := protected.Group("/ai")
	ai.Use(opts.Generation...)
	{
		ai.POST("/generate-article", h.Generation.GenerateArticle)
		ai.POST("/blog-title", h.Generation.GenerateBlogTitle)
		ai.POST("/generate-images", h.Generation.GenerateImage)
		ai.POST("/remove-background", h.Generation.RemoveBackground)
		ai.POST("/remove-object", h.Generation.RemoveObject)
		ai.POST("/resume-review", h.Generation.ReviewResume)
	}

	user := protected.Group("/user")
	{
		user.GET("/get-user-creations", h.Creation.ListUserCreations)
		user.GET("/community", h.Creation.ListPublishedCreations)
		user.POST("/toggle-like-creation", h.Creation.ToggleLike)
		user.GET("/usage", h.Usage.GetUsage)
	}

	admin := protected.Group("/admin")
	admin.Use(RequireAdmin())
	{
		admin.POST("/usage/reset", h.Usage.ResetUsage)
	}
}
