package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type VisitorHandler struct {
	*BaseHandler
	visitors *services.VisitorService
}

func NewVisitorHandler(base *BaseHandler, visitors *services.VisitorService) *VisitorHandler {
	return &VisitorHandler{BaseHandler: base, visitors: visitors}
}

func (h *VisitorHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/admin/visitors")
	g.Use(h.Authenticated(), h.Can(auth.ActionView, auth.ResourceVisitors))
	{
		g.GET("", h.List)
		g.GET("/stats", h.Stats)
	}
}

func (h *VisitorHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.visitors.List(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *VisitorHandler) Stats(c *gin.Context) {
	stats, err := h.visitors.Stats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
