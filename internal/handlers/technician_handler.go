package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TechnicianHandler struct {
	*BaseHandler
	technicians *services.TechnicianService
}

func NewTechnicianHandler(base *BaseHandler, technicians *services.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{
		BaseHandler: base,
		technicians: technicians,
	}
}

func (h *TechnicianHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/admin/technicians")
	g.Use(h.Authenticated())
	{
		g.GET("", h.Can(auth.ActionView, auth.ResourceTechnicians), h.List)
		g.POST("/:id/deactivate", h.Can(auth.ActionUpdate, auth.ResourceTechnicians), h.lifecycle(h.technicians.Deactivate))
		g.POST("/:id/activate", h.Can(auth.ActionUpdate, auth.ResourceTechnicians), h.lifecycle(h.technicians.Activate))
		g.POST("/:id/end-contract", h.Can(auth.ActionManage, auth.ResourceTechnicians), h.lifecycle(h.technicians.EndContract))
	}
}

// List returns technicians; ?active=true|false filters by account state.
func (h *TechnicianHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.technicians.List(h.GetDB(c), ParseQueryBool(c, "active"), c.Query("search"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// lifecycle adapts a technician state change to a handler. Each change
// emails the technician.
func (h *TechnicianHandler) lifecycle(change func(db *gorm.DB, id string) (*models.User, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := change(h.GetDB(c), c.Param("id"))
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
