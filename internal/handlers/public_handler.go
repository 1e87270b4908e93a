package handlers

import (
	"net/http"

	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/services"
	"poolservice_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// trackedHeaders are the request headers stored with a visit.
var trackedHeaders = []string{"Accept-Language", "Accept", "DNT", "Sec-CH-UA-Platform", "X-Forwarded-For"}

type PublicHandler struct {
	*BaseHandler
	intake   *services.IntakeService
	site     *services.SiteService
	visitors *services.VisitorService
}

func NewPublicHandler(base *BaseHandler, intake *services.IntakeService, site *services.SiteService, visitors *services.VisitorService) *PublicHandler {
	return &PublicHandler{
		BaseHandler: base,
		intake:      intake,
		site:        site,
		visitors:    visitors,
	}
}

func (h *PublicHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/public")
	{
		public.GET("/home", h.Home)
		public.GET("/company", h.Company)
		public.GET("/about", h.About)
		public.GET("/gallery", h.Gallery)
		public.GET("/social", h.Social)
		public.GET("/popup", h.Popup)
	}

	intake := public.Group("")
	intake.Use(h.Limited("intake"))
	{
		intake.POST("/service-requests", h.SubmitServiceRequest)
		intake.POST("/messages", h.SubmitMessage)
		intake.POST("/job-applications", h.SubmitJobApplication)
	}
}

// --- Intake ---

// SubmitServiceRequest godoc
// @Summary Request a pool service
// @Description Stores an unassigned service request and notifies the office by email.
// @Tags public
// @Accept json
// @Produce json
// @Param request body dto.ServiceRequestForm true "Service request"
// @Success 201 {object} dto.CreatedResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /public/service-requests [post]
func (h *PublicHandler) SubmitServiceRequest(c *gin.Context) {
	var req dto.ServiceRequestForm
	if !h.Bind(c, &req) {
		return
	}

	sr, err := h.intake.SubmitServiceRequest(h.GetDB(c), &req)
	if err != nil {
		h.HandleFormError(c, err, req)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{
		Message: "Thank you! Your request was received and we will contact you shortly.",
		ID:      sr.ID,
	})
}

// SubmitMessage godoc
// @Summary Send a contact message
// @Tags public
// @Accept json
// @Produce json
// @Param request body dto.MessageForm true "Message"
// @Success 201 {object} dto.CreatedResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /public/messages [post]
func (h *PublicHandler) SubmitMessage(c *gin.Context) {
	var req dto.MessageForm
	if !h.Bind(c, &req) {
		return
	}

	msg, err := h.intake.SubmitMessage(h.GetDB(c), &req)
	if err != nil {
		h.HandleFormError(c, err, req)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{
		Message: "Thank you for your message.",
		ID:      msg.ID,
	})
}

// SubmitJobApplication godoc
// @Summary Apply for a job
// @Description Anonymous job application. Duplicate email or tax number is a 409.
// @Tags public
// @Accept json
// @Produce json
// @Param request body dto.PublicApplicationForm true "Application"
// @Success 201 {object} dto.CreatedResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Failure 422 {object} apperrors.ErrorResponse
// @Router /public/job-applications [post]
func (h *PublicHandler) SubmitJobApplication(c *gin.Context) {
	var req dto.PublicApplicationForm
	if !h.Bind(c, &req) {
		return
	}

	applicant, err := h.intake.SubmitJobApplication(h.GetDB(c), &req)
	if err != nil {
		h.HandleFormError(c, err, req)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{
		Message: "Your application was submitted.",
		ID:      applicant.ID,
	})
}

// --- Site ---

// Home godoc
// @Summary Home page content
// @Description Returns the published site content and counts the visit.
// @Tags public
// @Produce json
// @Success 200 {object} services.HomePage
// @Router /public/home [get]
func (h *PublicHandler) Home(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.visitors.Track(db, visitFrom(c)); err != nil {
		logger.CtxWarn(c.Request.Context(), "Visit was not tracked", "error", err.Error(), "ip", c.ClientIP())
	}

	home, err := h.site.Home(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, home)
}

func (h *PublicHandler) Company(c *gin.Context) {
	company, err := h.site.Company(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

func (h *PublicHandler) About(c *gin.Context) {
	items, err := h.site.About(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *PublicHandler) Gallery(c *gin.Context) {
	items, err := h.site.Gallery(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *PublicHandler) Social(c *gin.Context) {
	items, err := h.site.Social(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *PublicHandler) Popup(c *gin.Context) {
	popup, err := h.site.Popup(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"popup": popup})
}

func visitFrom(c *gin.Context) services.Visit {
	headers := make(map[string]string)
	for _, name := range trackedHeaders {
		if v := c.GetHeader(name); v != "" {
			headers[name] = v
		}
	}
	return services.Visit{
		IP:        c.ClientIP(),
		Method:    c.Request.Method,
		URL:       c.Request.URL.String(),
		Referer:   c.Request.Referer(),
		UserAgent: c.Request.UserAgent(),
		Headers:   headers,
	}
}
