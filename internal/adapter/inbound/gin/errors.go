package gin

import (
	"errors"

	"github.com/creatorkit/server/internal/domain/creation"
	"github.com/creatorkit/server/internal/domain/generation"
	"github.com/creatorkit/server/internal/domain/identity"
	apperrors "github.com/creatorkit/server/internal/utils/errors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse = apperrors.ErrorResponse

// generationError maps a pipeline failure to the HTTP error it is delivered as.
func generationError(err error) *apperrors.AppError {
	f, ok := generation.AsFailure(err)
	if !ok {
		return apperrors.Internal("", err)
	}

	switch f.Kind {
	case generation.KindAuthentication:
		return apperrors.Unauthorized(f.Message)
	case generation.KindEntitlement:
		return apperrors.EntitlementDenied(string(f.Reason), f.Message)
	case generation.KindValidation:
		return apperrors.BadRequest(f.Message)
	case generation.KindProvider:
		return apperrors.UpstreamFailed("", f.Err)
	case generation.KindPersistence:
		return apperrors.Internal(f.Message, f.Err)
	}
	return apperrors.Internal("", err)
}

// domainError maps creation and identity errors to HTTP errors.
func domainError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr

	case errors.Is(err, creation.ErrCreationNotFound):
		return apperrors.NotFound("Creation")

	case errors.Is(err, creation.ErrInvalidUser),
		errors.Is(err, identity.ErrAuthentication):
		return apperrors.BadRequest("user id is required")

	case errors.Is(err, identity.ErrInvalidCount):
		return apperrors.BadRequest(err.Error())
	}
	return apperrors.Internal("", err)
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
}

func respondError(c *gin.Context, appErr *apperrors.AppError) {
	c.JSON(appErr.StatusCode, appErr.ToResponse())
}
