package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services"
	"poolservice_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	users *services.UserService
}

func NewUserHandler(base *BaseHandler, users *services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/admin/users")
	g.Use(h.Authenticated())
	{
		g.GET("", h.Can(auth.ActionView, auth.ResourceUsers), h.List)
		g.POST("", h.Can(auth.ActionCreate, auth.ResourceUsers), h.Create)
		g.GET("/:id", h.Can(auth.ActionView, auth.ResourceUsers), h.Get)
		g.PUT("/:id", h.Can(auth.ActionUpdate, auth.ResourceUsers), h.Update)
		g.DELETE("/:id", h.Can(auth.ActionDelete, auth.ResourceUsers), h.Delete)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.users.List(h.GetDB(c), repositories.UserFilter{
		Role:     models.UserRole(c.Query("role")),
		IsActive: ParseQueryBool(c, "active"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.Bind(c, &req) {
		return
	}

	user, err := h.users.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.Bind(c, &req) {
		return
	}

	user, err := h.users.Update(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := h.Identity(c)
	if !ok {
		return
	}

	if err := h.users.Delete(h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
