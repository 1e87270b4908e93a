package middleware

import (
	"strings"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/models"
	"poolservice_backend/pkg/apperrors"
	"poolservice_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Authenticator resolves a bearer token into a user that may sign in.
type Authenticator interface {
	Authenticate(db *gorm.DB, token string) (*models.User, error)
}

// AuthMiddleware requires a valid bearer token and stores the request
// identity in the request context. It must run after DBMiddleware.
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		db := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		user, err := authn.Authenticate(db.WithContext(ctx), tokenStr)
		if err != nil {
			logger.CtxWarn(ctx, "Authentication failed", "path", c.Request.URL.Path, "error", err.Error())
			apperrors.HandleError(c, err)
			return
		}

		id := auth.IdentityFromUser(user)
		ctx = auth.WithIdentity(ctx, id)
		ctx = logger.WithUserID(ctx, id.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireCapability rejects requests whose identity lacks resource:action.
func RequireCapability(authz *auth.Authorizer, action auth.Action, resource auth.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c.Request.Context())
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !authz.Can(id, action, resource) {
			logger.CtxWarn(c.Request.Context(), "Access denied",
				"role", id.Role,
				"capability", auth.Capability(resource, action),
				"path", c.Request.URL.Path,
			)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}
