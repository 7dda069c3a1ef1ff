package gin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/inbound"
	apperrors "github.com/creatorkit/server/internal/utils/errors"
	"github.com/creatorkit/server/internal/utils/metrics"
	"github.com/gin-gonic/gin"
)

// creationHandler implements inbound.CreationHttpPort.
type creationHandler struct {
	creations inbound.CreationDomain
	metrics   *metrics.Metrics
}

// NewCreationHandler creates a new creation HTTP handler.
func NewCreationHandler(creationDomain inbound.CreationDomain, m *metrics.Metrics) inbound.CreationHttpPort {
	return &creationHandler{creations: creationDomain, metrics: m}
}

// Compile-time interface check
var _ inbound.CreationHttpPort = (*creationHandler)(nil)

// CreationListResponse is returned by both listing endpoints.
type CreationListResponse struct {
	Success   bool                      `json:"success"`
	Creations []*model.CreationResponse `json:"creations"`
}

// ToggleLikeRequest is the body of the like toggle endpoint. The id may be
// sent as a number or a numeric string.
type ToggleLikeRequest struct {
	ID json.RawMessage `json:"id" swaggertype:"string"`
}

// ToggleLikeResponse is returned after a like toggle.
type ToggleLikeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"likeCount"`
}

// ListUserCreations returns the caller's creations, newest first.
//
//	@Summary		List my creations
//	@Tags			Creations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Maximum number of creations"
//	@Success		200		{object}	CreationListResponse
//	@Failure		401		{object}	ErrorResponse	"Not authenticated"
//	@Router			/user/get-user-creations [get]
func (h *creationHandler) ListUserCreations(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	creations, err := h.creations.ListByUser(c.Request.Context(), caller.UserID, queryLimit(c))
	if err != nil {
		respondError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, newCreationList(creations))
}

// ListPublishedCreations returns the community feed, newest first.
//
//	@Summary		List community creations
//	@Tags			Creations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int	false	"Maximum number of creations"
//	@Success		200		{object}	CreationListResponse
//	@Failure		401		{object}	ErrorResponse	"Not authenticated"
//	@Router			/user/community [get]
func (h *creationHandler) ListPublishedCreations(c *gin.Context) {
	if _, ok := requireCaller(c); !ok {
		return
	}

	creations, err := h.creations.ListPublished(c.Request.Context(), queryLimit(c))
	if err != nil {
		respondError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, newCreationList(creations))
}

// ToggleLike likes or unlikes a creation for the caller.
//
//	@Summary		Toggle like
//	@Tags			Creations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ToggleLikeRequest	true	"Creation id"
//	@Success		200		{object}	ToggleLikeResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid request"
//	@Failure		401		{object}	ErrorResponse	"Not authenticated"
//	@Failure		404		{object}	ErrorResponse	"Creation not found"
//	@Router			/user/toggle-like-creation [post]
func (h *creationHandler) ToggleLike(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.BadRequest("invalid request body"))
		return
	}
	id, ok := parseCreationID(req.ID)
	if !ok {
		respondError(c, apperrors.BadRequest("creation id is required"))
		return
	}

	result, err := h.creations.ToggleLike(c.Request.Context(), id, caller.UserID)
	if err != nil {
		respondError(c, domainError(err))
		return
	}
	if h.metrics != nil {
		h.metrics.RecordLikeToggle(result.Liked)
	}

	message := "Creation unliked"
	if result.Liked {
		message = "Creation liked"
	}
	c.JSON(http.StatusOK, ToggleLikeResponse{
		Success:   true,
		Message:   message,
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
	})
}

func newCreationList(creations []*model.Creation) CreationListResponse {
	out := make([]*model.CreationResponse, 0, len(creations))
	for _, c := range creations {
		out = append(out, c.ToResponse())
	}
	return CreationListResponse{Success: true, Creations: out}
}

// queryLimit reads ?limit. Zero lets the domain apply its default.
func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}

func parseCreationID(raw json.RawMessage) (int64, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
