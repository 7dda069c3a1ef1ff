package gin

import (
	"net/http"

	"github.com/creatorkit/server/internal/port/inbound"
	apperrors "github.com/creatorkit/server/internal/utils/errors"
	"github.com/gin-gonic/gin"
)

// usageHandler implements inbound.UsageHttpPort.
type usageHandler struct {
	identity inbound.IdentityDomain
}

// NewUsageHandler creates a new usage HTTP handler.
func NewUsageHandler(identityDomain inbound.IdentityDomain) inbound.UsageHttpPort {
	return &usageHandler{identity: identityDomain}
}

// Compile-time interface check
var _ inbound.UsageHttpPort = (*usageHandler)(nil)

// UsageResponse describes the caller's free-tier usage this period.
type UsageResponse struct {
	Success        bool   `json:"success"`
	Plan           string `json:"plan"`
	FreeUsageCount int    `json:"freeUsageCount"`
	FreeLimit      int    `json:"freeLimit"`
	Period         string `json:"period"`
}

// ResetUsageRequest is the body of the admin usage reset.
type ResetUsageRequest struct {
	UserID string `json:"userId" binding:"required"`
	Count  int    `json:"count"`
}

// GetUsage returns the caller's plan and free usage.
//
//	@Summary		Get usage
//	@Tags			Usage
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UsageResponse
//	@Failure		401	{object}	ErrorResponse	"Not authenticated"
//	@Router			/user/usage [get]
func (h *usageHandler) GetUsage(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, UsageResponse{
		Success:        true,
		Plan:           caller.Plan.String(),
		FreeUsageCount: caller.FreeUsageCount,
		FreeLimit:      h.identity.FreeLimit(),
		Period:         caller.Period,
	})
}

// ResetUsage overwrites a user's free usage for the current period.
//
//	@Summary		Reset usage
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ResetUsageRequest	true	"Reset request"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	ErrorResponse	"Invalid request"
//	@Failure		403		{object}	ErrorResponse	"Admin only"
//	@Router			/admin/usage/reset [post]
func (h *usageHandler) ResetUsage(c *gin.Context) {
	var req ResetUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest("userId is required"))
		return
	}

	if err := h.identity.SetUsage(c.Request.Context(), req.UserID, req.Count); err != nil {
		respondError(c, domainError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Usage updated",
	})
}
