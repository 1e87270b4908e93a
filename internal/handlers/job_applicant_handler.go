package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/services"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type JobApplicantHandler struct {
	*BaseHandler
	applicants *services.JobApplicantService
}

func NewJobApplicantHandler(base *BaseHandler, applicants *services.JobApplicantService) *JobApplicantHandler {
	return &JobApplicantHandler{
		BaseHandler: base,
		applicants:  applicants,
	}
}

func (h *JobApplicantHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/admin/job-applicants")
	g.Use(h.Authenticated())
	{
		g.GET("", h.Can(auth.ActionView, auth.ResourceJobApplicants), h.List)
		g.GET("/:id", h.Can(auth.ActionView, auth.ResourceJobApplicants), h.Get)
		g.DELETE("/:id", h.Can(auth.ActionDelete, auth.ResourceJobApplicants), h.Delete)
		g.POST("/:id/accept", h.Can(auth.ActionUpdate, auth.ResourceJobApplicants), h.Accept)
		g.POST("/:id/reject", h.Can(auth.ActionUpdate, auth.ResourceJobApplicants), h.Reject)
		g.POST("/:id/hire", h.Can(auth.ActionManage, auth.ResourceJobApplicants), h.Hire)
	}
}

func (h *JobApplicantHandler) List(c *gin.Context) {
	var query dto.ApplicantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return
	}
	page, pageSize := ParsePagination(c)

	list, err := h.applicants.List(h.GetDB(c), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *JobApplicantHandler) Get(c *gin.Context) {
	applicant, err := h.applicants.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicant)
}

func (h *JobApplicantHandler) Delete(c *gin.Context) {
	if err := h.applicants.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Applicant deleted"})
}

func (h *JobApplicantHandler) Accept(c *gin.Context) {
	applicant, err := h.applicants.Accept(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicant)
}

// Reject godoc
// @Summary Reject an applicant
// @Description The optional reason is stored and included in the email to the applicant.
// @Tags job-applicants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Applicant ID"
// @Param request body dto.RejectApplicantRequest false "Reason"
// @Success 200 {object} models.JobApplicant
// @Router /admin/job-applicants/{id}/reject [post]
func (h *JobApplicantHandler) Reject(c *gin.Context) {
	var req dto.RejectApplicantRequest
	if !h.BindOptional(c, &req) {
		return
	}

	applicant, err := h.applicants.Reject(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicant)
}

// Hire godoc
// @Summary Hire an applicant
// @Description Creates the technician account and marks the applicant hired in one transaction. A second hire is a 409.
// @Tags job-applicants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Applicant ID"
// @Success 201 {object} services.HireResult
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /admin/job-applicants/{id}/hire [post]
func (h *JobApplicantHandler) Hire(c *gin.Context) {
	result, err := h.applicants.Hire(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
