package gin

import (
	"errors"
	"strings"

	"github.com/creatorkit/server/internal/domain/identity"
	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/inbound"
	apperrors "github.com/creatorkit/server/internal/utils/errors"
	"github.com/creatorkit/server/internal/utils/requestctx"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// callerKey is the gin context key holding the resolved caller.
const callerKey = "caller"

// RequireCaller resolves the bearer session token into a caller before the
// handler runs. Requests without a valid session are rejected with 401 and
// never reach the generation pipeline.
func RequireCaller(identityDomain inbound.IdentityDomain, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortWithError(c, apperrors.Unauthorized(""))
			return
		}

		caller, err := identityDomain.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrUsageLookup) {
				logger.Error("resolve caller failed", zap.Error(err))
				abortWithError(c, apperrors.Internal("", err))
				return
			}
			abortWithError(c, apperrors.Unauthorized(""))
			return
		}

		c.Set(callerKey, caller)
		c.Request = c.Request.WithContext(requestctx.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin claim. It must run after
// RequireCaller.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if !ok {
			abortWithError(c, apperrors.Unauthorized(""))
			return
		}
		if !caller.IsAdmin {
			abortWithError(c, apperrors.Forbidden(""))
			return
		}
		c.Next()
	}
}

// CallerFromContext returns the caller set by RequireCaller.
func CallerFromContext(c *gin.Context) (*model.Caller, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return nil, false
	}
	caller, ok := v.(*model.Caller)
	if !ok || caller == nil {
		return nil, false
	}
	return caller, true
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
