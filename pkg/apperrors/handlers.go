package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - standard error envelope
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler renders errors for gin
type GinErrorHandler struct {
	Debug bool
}

// Debug controls whether internal error text is exposed in the details of
// 5xx responses. It stays false outside development.
var Debug = false

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "server error",
			"code", appErr.Code,
			"error", appErr.Unwrap(),
			"path", c.Request.URL.Path,
		)
		if h.Debug && appErr.Err != nil {
			appErr = appErr.WithDetails(gin.H{"debug": appErr.Err.Error()})
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError - shortcut used by handlers and middleware
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: Debug}
	handler.HandleGinError(c, err)
}

// AsAppError - unwraps err into *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
