package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/services"
	"poolservice_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// PortalHandler serves signed-in users: the job application form and the
// technician's own assigned tasks.
type PortalHandler struct {
	*BaseHandler
	applicants *services.JobApplicantService
	tasks      *services.TaskService
}

func NewPortalHandler(base *BaseHandler, applicants *services.JobApplicantService, tasks *services.TaskService) *PortalHandler {
	return &PortalHandler{
		BaseHandler: base,
		applicants:  applicants,
		tasks:       tasks,
	}
}

func (h *PortalHandler) RegisterRoutes(r *gin.RouterGroup) {
	portal := r.Group("/portal")
	portal.Use(h.Authenticated())
	{
		portal.POST("/job-applications", h.Can(auth.ActionCreate, auth.ResourceJobApplicants), h.Apply)

		tasks := portal.Group("/assigned-tasks")
		tasks.GET("", h.Can(auth.ActionView, auth.ResourceAssignedTasks), h.ListAssigned)
		tasks.POST("/:id/start", h.Can(auth.ActionUpdate, auth.ResourceAssignedTasks), h.Start)
		tasks.POST("/:id/complete", h.Can(auth.ActionUpdate, auth.ResourceAssignedTasks), h.Complete)
	}
}

// Apply godoc
// @Summary Submit a job application as a signed-in user
// @Description Stricter rules than the public form. Licence details are required when licence is "yes".
// @Tags portal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PortalApplicationForm true "Application"
// @Success 201 {object} dto.CreatedResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /portal/job-applications [post]
func (h *PortalHandler) Apply(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.PortalApplicationForm
	if !h.Bind(c, &req) {
		return
	}

	applicant, err := h.applicants.Apply(h.GetDB(c), id, &req)
	if err != nil {
		h.HandleFormError(c, err, req)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{
		Message: "Your application was submitted.",
		ID:      applicant.ID,
	})
}

func (h *PortalHandler) ListAssigned(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	list, err := h.tasks.ListAssigned(h.GetDB(c), id, models.AssignedTaskStatus(c.Query("status")), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *PortalHandler) Start(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}

	task, err := h.tasks.Start(h.GetDB(c), id, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *PortalHandler) Complete(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.CompleteTaskRequest
	if !h.BindOptional(c, &req) {
		return
	}

	task, err := h.tasks.Complete(h.GetDB(c), id, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}
