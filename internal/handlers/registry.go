package handlers

import (
	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/services"
	"poolservice_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by every handler.
type RouteRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	PublicHandler         *PublicHandler
	AuthHandler           *AuthHandler
	PortalHandler         *PortalHandler
	JobApplicantHandler   *JobApplicantHandler
	TechnicianHandler     *TechnicianHandler
	VisitorHandler        *VisitorHandler
	EmailBlastHandler     *EmailBlastHandler
	ServiceRequestHandler *ServiceRequestHandler
	TaskHandler           *TaskHandler
	MessageHandler        *MessageHandler
	UserHandler           *UserHandler

	ClientHandler         *CrudHandler[models.Client, dto.ClientRequest]
	ClientCategoryHandler *CrudHandler[models.ClientCategory, dto.ClientCategoryRequest]
	AboutHandler          *CrudHandler[models.About, dto.AboutRequest]
	CompanyInfoHandler    *CrudHandler[models.CompanyInfo, dto.CompanyInfoRequest]
	SocialNetworkHandler  *CrudHandler[models.SocialNetwork, dto.SocialNetworkRequest]
	GalleryHandler        *CrudHandler[models.Gallery, dto.GalleryRequest]
	PopupHandler          *CrudHandler[models.Popup, dto.PopupRequest]
}

func NewAppHandlers(base *BaseHandler, svc *services.ServiceContainer) *AppHandlers {
	content := svc.Content
	return &AppHandlers{
		PublicHandler:         NewPublicHandler(base, svc.IntakeService, svc.SiteService, svc.VisitorService),
		AuthHandler:           NewAuthHandler(base, svc.AuthService),
		PortalHandler:         NewPortalHandler(base, svc.JobApplicantService, svc.TaskService),
		JobApplicantHandler:   NewJobApplicantHandler(base, svc.JobApplicantService),
		TechnicianHandler:     NewTechnicianHandler(base, svc.TechnicianService),
		VisitorHandler:        NewVisitorHandler(base, svc.VisitorService),
		EmailBlastHandler:     NewEmailBlastHandler(base, svc.EmailBlastService),
		ServiceRequestHandler: NewServiceRequestHandler(base, svc.ServiceRequestService),
		TaskHandler:           NewTaskHandler(base, svc.TaskService),
		MessageHandler:        NewMessageHandler(base, svc.MessageService),
		UserHandler:           NewUserHandler(base, svc.UserService),

		ClientHandler:         NewCrudHandler(base, "/admin/clients", auth.ResourceClients, content.Clients, StringID),
		ClientCategoryHandler: NewCrudHandler(base, "/admin/client-categories", auth.ResourceClientCategories, content.ClientCategories, UintID),
		AboutHandler:          NewCrudHandler(base, "/admin/about", auth.ResourceContent, content.About, StringID),
		CompanyInfoHandler:    NewCrudHandler(base, "/admin/company-info", auth.ResourceContent, content.CompanyInfo, UintID),
		SocialNetworkHandler:  NewCrudHandler(base, "/admin/social-networks", auth.ResourceContent, content.SocialNetworks, UintID),
		GalleryHandler:        NewCrudHandler(base, "/admin/gallery", auth.ResourceContent, content.Gallery, StringID),
		PopupHandler:          NewCrudHandler(base, "/admin/popups", auth.ResourceContent, content.Popups, StringID),
	}
}

// All lists the handlers in registration order.
func (a *AppHandlers) All() []RouteRegistrar {
	return []RouteRegistrar{
		a.PublicHandler,
		a.AuthHandler,
		a.PortalHandler,
		a.JobApplicantHandler,
		a.TechnicianHandler,
		a.VisitorHandler,
		a.EmailBlastHandler,
		a.ServiceRequestHandler,
		a.TaskHandler,
		a.MessageHandler,
		a.UserHandler,
		a.ClientHandler,
		a.ClientCategoryHandler,
		a.AboutHandler,
		a.CompanyInfoHandler,
		a.SocialNetworkHandler,
		a.GalleryHandler,
		a.PopupHandler,
	}
}
