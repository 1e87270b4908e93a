package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services"
	"poolservice_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	*BaseHandler
	tasks *services.TaskService
}

func NewTaskHandler(base *BaseHandler, tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{BaseHandler: base, tasks: tasks}
}

func (h *TaskHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/admin/tasks")
	g.Use(h.Authenticated())
	{
		g.GET("", h.Can(auth.ActionView, auth.ResourceTasks), h.List)
		g.GET("/:id", h.Can(auth.ActionView, auth.ResourceTasks), h.Get)
		g.PUT("/:id", h.Can(auth.ActionUpdate, auth.ResourceTasks), h.Update)
		g.DELETE("/:id", h.Can(auth.ActionDelete, auth.ResourceTasks), h.Delete)
		g.POST("/:id/assign", h.Can(auth.ActionCreate, auth.ResourceAssignedTasks), h.Assign)
	}
}

func (h *TaskHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.tasks.List(h.GetDB(c), repositories.TaskFilter{
		Status:           c.Query("status"),
		UserID:           c.Query("user_id"),
		ServiceRequestID: c.Query("service_request_id"),
		Page:             page,
		PageSize:         pageSize,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns a task. Technicians only see their own.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(h.GetDB(c), id, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if !h.Bind(c, &req) {
		return
	}

	task, err := h.tasks.Update(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (h *TaskHandler) Assign(c *gin.Context) {
	var req dto.AssignTaskRequest
	if !h.BindOptional(c, &req) {
		return
	}

	assigned, err := h.tasks.Assign(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assigned)
}
