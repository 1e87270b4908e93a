package services

import (
	"errors"
	"strings"

	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ServiceRequestService struct {
	repo      repositories.ServiceRequestRepository
	tasks     repositories.TaskRepository
	users     repositories.UserRepository
	clients   *repositories.CrudRepository[models.Client]
	validator *validator.Validator
}

func NewServiceRequestService(
	repo repositories.ServiceRequestRepository,
	tasks repositories.TaskRepository,
	users repositories.UserRepository,
	clients *repositories.CrudRepository[models.Client],
	v *validator.Validator,
) *ServiceRequestService {
	return &ServiceRequestService{
		repo:      repo,
		tasks:     tasks,
		users:     users,
		clients:   clients,
		validator: v,
	}
}

func (s *ServiceRequestService) List(db *gorm.DB, assigned *bool, search string, page, pageSize int) (*dto.ListResponse[models.ServiceRequest], error) {
	items, total, err := s.repo.FindWithFilter(db, repositories.ServiceRequestFilter{
		Assigned: assigned,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, page, pageSize), nil
}

// Get returns the request with its tasks and client.
func (s *ServiceRequestService) Get(db *gorm.DB, id string) (*models.ServiceRequest, error) {
	sr, err := s.repo.FindWithTasks(db, id)
	if err != nil {
		return nil, translateError(err, "service_request")
	}
	return sr, nil
}

func (s *ServiceRequestService) Create(db *gorm.DB, req *dto.ServiceRequestRequest) (*models.ServiceRequest, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	sr := &models.ServiceRequest{}
	if err := s.apply(db, sr, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(db, sr); err != nil {
		return nil, translateError(err, "service_request")
	}
	return sr, nil
}

func (s *ServiceRequestService) Update(db *gorm.DB, id string, req *dto.ServiceRequestRequest) (*models.ServiceRequest, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	sr, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "service_request")
	}
	if err := s.apply(db, sr, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(db, sr); err != nil {
		return nil, translateError(err, "service_request")
	}
	return sr, nil
}

func (s *ServiceRequestService) Delete(db *gorm.DB, id string) error {
	return translateError(s.repo.Delete(db, id), "service_request")
}

func (s *ServiceRequestService) apply(db *gorm.DB, sr *models.ServiceRequest, req *dto.ServiceRequestRequest) error {
	sr.Name = strings.TrimSpace(req.Name)
	sr.Email = strings.ToLower(strings.TrimSpace(req.Email))
	sr.Zip = strings.TrimSpace(req.Zip)
	sr.Phone = strings.TrimSpace(req.Phone)
	sr.Service = strings.TrimSpace(req.Service)
	sr.Description = req.Description
	sr.ClientID = optional(req.ClientID)

	if sr.ClientID != nil {
		if _, err := s.clients.FindByID(db, *sr.ClientID); err != nil {
			if errors.Is(err, repositories.ErrRecordNotFound) {
				return apperrors.FieldError("client_id", "Unknown client")
			}
			return apperrors.DatabaseError(err)
		}
	}
	return nil
}

// CreateTask schedules work for a technician and marks the request assigned,
// in one transaction.
func (s *ServiceRequestService) CreateTask(db *gorm.DB, id string, req *dto.CreateTaskRequest) (*models.Task, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.repo.FindByID(tx, id); err != nil {
		return nil, translateError(err, "service_request")
	}
	if err := requireActiveTechnician(tx, s.users, req.TechnicianID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ServiceRequestID: id,
		UserID:           req.TechnicianID,
		Status:           models.TaskStatusPending,
		ScheduledDate:    optionalDate(req.ScheduledDate),
		Comments:         optional(req.Comments),
	}
	if err := s.tasks.Create(tx, task); err != nil {
		return nil, translateError(err, "task")
	}
	if err := s.repo.MarkAssigned(tx, id, req.TechnicianID); err != nil {
		return nil, translateError(err, "service_request")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctxOf(db), "🗓️ Task created", "service_request_id", id, "task_id", task.ID, "technician_id", req.TechnicianID)
	return task, nil
}

// requireActiveTechnician reports a field error on user_id unless id is an
// active technician.
func requireActiveTechnician(db *gorm.DB, users repositories.UserRepository, id string) error {
	user, err := users.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return apperrors.FieldError("user_id", "Unknown technician")
		}
		return apperrors.DatabaseError(err)
	}
	if user.Role != models.UserRoleTechnician {
		return apperrors.FieldError("user_id", "The user is not a technician")
	}
	if !user.CanSignIn() {
		return apperrors.FieldError("user_id", "The technician is not active")
	}
	return nil
}
