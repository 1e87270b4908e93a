package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/services"
	"poolservice_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ServiceRequestHandler struct {
	*BaseHandler
	requests *services.ServiceRequestService
}

func NewServiceRequestHandler(base *BaseHandler, requests *services.ServiceRequestService) *ServiceRequestHandler {
	return &ServiceRequestHandler{BaseHandler: base, requests: requests}
}

func (h *ServiceRequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/admin/service-requests")
	g.Use(h.Authenticated())
	{
		g.GET("", h.Can(auth.ActionView, auth.ResourceServiceRequests), h.List)
		g.POST("", h.Can(auth.ActionCreate, auth.ResourceServiceRequests), h.Create)
		g.GET("/:id", h.Can(auth.ActionView, auth.ResourceServiceRequests), h.Get)
		g.PUT("/:id", h.Can(auth.ActionUpdate, auth.ResourceServiceRequests), h.Update)
		g.DELETE("/:id", h.Can(auth.ActionDelete, auth.ResourceServiceRequests), h.Delete)
		g.POST("/:id/tasks", h.Can(auth.ActionCreate, auth.ResourceTasks), h.CreateTask)
	}
}

// List supports ?assigned=true|false and ?search=.
func (h *ServiceRequestHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.requests.List(h.GetDB(c), ParseQueryBool(c, "assigned"), c.Query("search"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ServiceRequestHandler) Get(c *gin.Context) {
	sr, err := h.requests.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}

func (h *ServiceRequestHandler) Create(c *gin.Context) {
	var req dto.ServiceRequestRequest
	if !h.Bind(c, &req) {
		return
	}

	sr, err := h.requests.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sr)
}

func (h *ServiceRequestHandler) Update(c *gin.Context) {
	var req dto.ServiceRequestRequest
	if !h.Bind(c, &req) {
		return
	}

	sr, err := h.requests.Update(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sr)
}

func (h *ServiceRequestHandler) Delete(c *gin.Context) {
	if err := h.requests.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service request deleted"})
}

// CreateTask godoc
// @Summary Schedule a task for a service request
// @Description The technician must be active. The request is marked assigned.
// @Tags service-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service request ID"
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} models.Task
// @Router /admin/service-requests/{id}/tasks [post]
func (h *ServiceRequestHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !h.Bind(c, &req) {
		return
	}

	task, err := h.requests.CreateTask(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}
