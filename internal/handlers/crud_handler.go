package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// IDParser reads the path id of a resource.
type IDParser func(c *gin.Context) (interface{}, error)

// StringID passes the uuid path id through; the database rejects unknown ids.
func StringID(c *gin.Context) (interface{}, error) {
	return c.Param("id"), nil
}

// UintID parses numeric ids of the small lookup tables.
func UintID(c *gin.Context) (interface{}, error) {
	return ParseParamUint(c, "id")
}

// CrudHandler exposes a CrudService under one path. T is the entity, R the
// create/update request.
type CrudHandler[T any, R any] struct {
	*BaseHandler
	path     string
	resource auth.Resource
	service  *services.CrudService[T, R]
	parseID  IDParser
}

func NewCrudHandler[T any, R any](base *BaseHandler, path string, resource auth.Resource, service *services.CrudService[T, R], parseID IDParser) *CrudHandler[T, R] {
	return &CrudHandler[T, R]{
		BaseHandler: base,
		path:        path,
		resource:    resource,
		service:     service,
		parseID:     parseID,
	}
}

func (h *CrudHandler[T, R]) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group(h.path)
	g.Use(h.Authenticated())
	{
		g.GET("", h.Can(auth.ActionView, h.resource), h.List)
		g.POST("", h.Can(auth.ActionCreate, h.resource), h.Create)
		g.GET("/:id", h.Can(auth.ActionView, h.resource), h.Get)
		g.PUT("/:id", h.Can(auth.ActionUpdate, h.resource), h.Update)
		g.DELETE("/:id", h.Can(auth.ActionDelete, h.resource), h.Delete)
	}
}

func (h *CrudHandler[T, R]) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.service.List(h.GetDB(c), c.Query("search"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CrudHandler[T, R]) Get(c *gin.Context) {
	id, err := h.parseID(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	entity, err := h.service.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *CrudHandler[T, R]) Create(c *gin.Context) {
	req := new(R)
	if !h.Bind(c, req) {
		return
	}

	entity, err := h.service.Create(h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

func (h *CrudHandler[T, R]) Update(c *gin.Context) {
	id, err := h.parseID(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	req := new(R)
	if !h.Bind(c, req) {
		return
	}

	entity, err := h.service.Update(h.GetDB(c), id, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *CrudHandler[T, R]) Delete(c *gin.Context) {
	id, err := h.parseID(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.service.Delete(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
