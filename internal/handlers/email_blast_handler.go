package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/services"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type EmailBlastHandler struct {
	*BaseHandler
	blasts *services.EmailBlastService
}

func NewEmailBlastHandler(base *BaseHandler, blasts *services.EmailBlastService) *EmailBlastHandler {
	return &EmailBlastHandler{BaseHandler: base, blasts: blasts}
}

func (h *EmailBlastHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/admin/email-blasts")
	g.Use(h.Authenticated())
	{
		g.POST("", h.Can(auth.ActionCreate, auth.ResourceEmailBlasts), h.Send)
		g.GET("", h.Can(auth.ActionView, auth.ResourceEmailBlasts), h.List)
		g.GET("/:id", h.Can(auth.ActionView, auth.ResourceEmailBlasts), h.Get)
		g.DELETE("/:id", h.Can(auth.ActionDelete, auth.ResourceEmailBlasts), h.Delete)
	}
}

// Send godoc
// @Summary Send an email blast
// @Description Recipients are comma or newline separated and are sent as Bcc. Every attempt is recorded; a transport failure is a 502 that still carries the recorded blast.
// @Tags email-blasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EmailBlastRequest true "Blast"
// @Success 201 {object} models.EmailBlast
// @Failure 422 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse
// @Router /admin/email-blasts [post]
func (h *EmailBlastHandler) Send(c *gin.Context) {
	id, ok := h.Identity(c)
	if !ok {
		return
	}

	var req dto.EmailBlastRequest
	if !h.Bind(c, &req) {
		return
	}

	blast, err := h.blasts.Send(h.GetDB(c), id, &req)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && blast != nil {
			err = appErr.WithDetails(gin.H{"email_blast": blast})
		}
		h.HandleFormError(c, err, req)
		return
	}

	c.JSON(http.StatusCreated, blast)
}

func (h *EmailBlastHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.blasts.List(h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EmailBlastHandler) Get(c *gin.Context) {
	blast, err := h.blasts.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, blast)
}

func (h *EmailBlastHandler) Delete(c *gin.Context) {
	if err := h.blasts.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email blast deleted"})
}
