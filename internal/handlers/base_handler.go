package handlers

import (
	"fmt"
	"strconv"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/middleware"
	"poolservice_backend/pkg/apperrors"
	"poolservice_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Base handler
// ============================================================================

// BaseHandler carries what every handler needs to guard its routes.
type BaseHandler struct {
	authn   middleware.Authenticator
	authz   *auth.Authorizer
	limiter middleware.Limiter
}

func NewBaseHandler(authn middleware.Authenticator, authz *auth.Authorizer, limiter middleware.Limiter) *BaseHandler {
	return &BaseHandler{authn: authn, authz: authz, limiter: limiter}
}

// Authenticated resolves the bearer token of the request.
func (h *BaseHandler) Authenticated() gin.HandlerFunc {
	return middleware.AuthMiddleware(h.authn)
}

// Can requires the request identity to hold resource:action.
func (h *BaseHandler) Can(action auth.Action, resource auth.Resource) gin.HandlerFunc {
	return middleware.RequireCapability(h.authz, action, resource)
}

// Limited rate limits a route per client IP.
func (h *BaseHandler) Limited(scope string) gin.HandlerFunc {
	return middleware.RateLimitMiddleware(h.limiter, scope)
}

// ============================================================================
// 2. DB
// ============================================================================

// GetDB returns the request's *gorm.DB (pool or transaction) bound to the
// request context, so services log with the request id.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db.WithContext(c.Request.Context())
}

// ============================================================================
// 3. Binding
// ============================================================================

// Bind decodes the body (JSON or form, by Content-Type) into obj. Field
// rules are checked by the services; a value of the wrong type is a 422 on
// that field with the submitted input echoed.
func (h *BaseHandler) Bind(c *gin.Context, obj interface{}) bool {
	var err error
	if c.ContentType() == binding.MIMEJSON {
		err = c.ShouldBindBodyWith(obj, binding.JSON)
	} else {
		err = c.ShouldBind(obj)
	}
	if err == nil {
		return true
	}

	logger.CtxWarn(c.Request.Context(), "Failed to bind request body", "error", err.Error(), "path", c.Request.URL.Path)
	if fields := bindFieldErrors(c, obj, err); len(fields) > 0 {
		h.HandleFormError(c, apperrors.ValidationError(fields), rawInput(c))
		return false
	}
	apperrors.HandleError(c, apperrors.NewBadRequestError("The request body could not be read"))
	return false
}

// BindOptional is Bind for endpoints whose body may be empty.
func (h *BaseHandler) BindOptional(c *gin.Context, obj interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return h.Bind(c, obj)
}

// ============================================================================
// 4. Errors
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode < 500 {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"code", appErr.Code,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// HandleFormError is HandleServiceError for public forms: validation errors
// carry the submitted input back.
func (h *BaseHandler) HandleFormError(c *gin.Context, err error, input interface{}) {
	h.HandleServiceError(c, apperrors.WithInput(err, input))
}

// ============================================================================
// 5. Identity
// ============================================================================

// Identity returns the authenticated identity of the request.
func (h *BaseHandler) Identity(c *gin.Context) (auth.Identity, bool) {
	id, ok := auth.IdentityFrom(c.Request.Context())
	if !ok {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: identity not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return auth.Identity{}, false
	}
	return id, true
}

// ============================================================================
// 6. Parsing
// ============================================================================

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// ParseQueryBool returns nil when key is absent or not a boolean.
func ParseQueryBool(c *gin.Context, key string) *bool {
	value, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return nil
	}
	return &value
}

func ParsePagination(c *gin.Context) (page int, pageSize int) {
	const defaultPage = 1
	const defaultPageSize = 20
	const maxPageSize = 100

	page = ParseQueryInt(c, "page", defaultPage)
	if page <= 0 {
		page = defaultPage
	}

	pageSize = ParseQueryInt(c, "page_size", defaultPageSize)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}

// ParseParamUint reads a numeric path id.
func ParseParamUint(c *gin.Context, key string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(key), 10, 32)
	if err != nil {
		return 0, apperrors.NewBadRequestError("Invalid path parameter: " + key)
	}
	return uint(value), nil
}
