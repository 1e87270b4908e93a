package services

import (
	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/config"
	"poolservice_backend/internal/email"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/validator"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService           *AuthService
	IntakeService         *IntakeService
	JobApplicantService   *JobApplicantService
	TechnicianService     *TechnicianService
	VisitorService        *VisitorService
	SiteService           *SiteService
	EmailBlastService     *EmailBlastService
	ServiceRequestService *ServiceRequestService
	TaskService           *TaskService
	MessageService        *MessageService
	UserService           *UserService
	Content               *ContentServices
	EmailService          *EmailService

	Authorizer *auth.Authorizer
}

// Dependencies are the collaborators the services are built from.
type Dependencies struct {
	Config     *config.Config
	Mailer     email.Provider
	Tokens     *auth.TokenManager
	Authorizer *auth.Authorizer
	Validator  *validator.Validator
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	applicantRepo := repositories.NewJobApplicantRepository()
	serviceRequestRepo := repositories.NewServiceRequestRepository()
	taskRepo := repositories.NewTaskRepository()
	assignedTaskRepo := repositories.NewAssignedTaskRepository()
	messageRepo := repositories.NewMessageRepository()
	visitorRepo := repositories.NewVisitorRepository()
	blastRepo := repositories.NewEmailBlastRepository()
	contentRepos := repositories.NewContentRepositories()

	v := deps.Validator
	emails := NewEmailService(deps.Mailer, deps.Config)

	return &ServiceContainer{
		AuthService:           NewAuthService(userRepo, deps.Tokens, deps.Authorizer, v),
		IntakeService:         NewIntakeService(serviceRequestRepo, messageRepo, applicantRepo, emails, v),
		JobApplicantService:   NewJobApplicantService(applicantRepo, userRepo, emails, v),
		TechnicianService:     NewTechnicianService(userRepo, emails),
		VisitorService:        NewVisitorService(visitorRepo),
		SiteService:           NewSiteService(contentRepos),
		EmailBlastService:     NewEmailBlastService(blastRepo, emails, v),
		ServiceRequestService: NewServiceRequestService(serviceRequestRepo, taskRepo, userRepo, contentRepos.Clients, v),
		TaskService:           NewTaskService(taskRepo, assignedTaskRepo, userRepo, v),
		MessageService:        NewMessageService(messageRepo),
		UserService:           NewUserService(userRepo, v),
		Content:               NewContentServices(contentRepos, v),
		EmailService:          emails,

		Authorizer: deps.Authorizer,
	}
}
