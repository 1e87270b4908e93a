package handlers

import (
	"net/http"

	"poolservice_backend/internal/services"
	"poolservice_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService *services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Limited("login"), h.Login)
	r.GET("/me", h.Authenticated(), h.Me)
}

// Login godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.Bind(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Current identity and capabilities
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MeResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}

	me, err := h.authService.Me(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, me)
}
