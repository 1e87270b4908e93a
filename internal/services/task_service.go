package services

import (
	"errors"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// TaskService manages tasks and the technicians' assigned-task workflow:
// assigned -> in_progress -> completed.
type TaskService struct {
	tasks     repositories.TaskRepository
	assigned  repositories.AssignedTaskRepository
	users     repositories.UserRepository
	validator *validator.Validator
}

func NewTaskService(
	tasks repositories.TaskRepository,
	assigned repositories.AssignedTaskRepository,
	users repositories.UserRepository,
	v *validator.Validator,
) *TaskService {
	return &TaskService{tasks: tasks, assigned: assigned, users: users, validator: v}
}

// ============================================================================
// Tasks
// ============================================================================

func (s *TaskService) List(db *gorm.DB, filter repositories.TaskFilter) (*dto.ListResponse[models.Task], error) {
	items, total, err := s.tasks.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, filter.Page, filter.PageSize), nil
}

// Get returns the task. Technicians may only read their own tasks.
func (s *TaskService) Get(db *gorm.DB, id auth.Identity, taskID string) (*models.Task, error) {
	task, err := s.tasks.FindByID(db, taskID, "ServiceRequest")
	if err != nil {
		return nil, translateError(err, "task")
	}
	if id.Role == models.UserRoleTechnician && task.UserID != id.UserID {
		return nil, apperrors.ErrNotTaskOwner
	}
	return task, nil
}

func (s *TaskService) Update(db *gorm.DB, taskID string, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	task, err := s.tasks.FindByID(db, taskID)
	if err != nil {
		return nil, translateError(err, "task")
	}

	task.Status = req.Status
	task.ScheduledDate = optionalDate(req.ScheduledDate)
	task.Comments = optional(req.Comments)

	if err := s.tasks.Update(db, task); err != nil {
		return nil, translateError(err, "task")
	}
	return task, nil
}

func (s *TaskService) Delete(db *gorm.DB, taskID string) error {
	return translateError(s.tasks.Delete(db, taskID), "task")
}

// Assign creates the technician-facing execution record of a task.
func (s *TaskService) Assign(db *gorm.DB, taskID string, req *dto.AssignTaskRequest) (*models.AssignedTask, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	task, err := s.tasks.FindByID(db, taskID)
	if err != nil {
		return nil, translateError(err, "task")
	}

	technicianID := req.TechnicianID
	if technicianID == "" {
		technicianID = task.UserID
	}
	if err := requireActiveTechnician(db, s.users, technicianID); err != nil {
		return nil, err
	}

	assigned := &models.AssignedTask{
		TaskID: task.ID,
		UserID: technicianID,
		Status: models.AssignedTaskStatusAssigned,
	}
	if err := s.assigned.Create(db, assigned); err != nil {
		return nil, translateError(err, "assigned_task")
	}

	logger.CtxInfo(ctxOf(db), "📌 Task assigned", "task_id", task.ID, "technician_id", technicianID)
	return assigned, nil
}

// ============================================================================
// Technician portal
// ============================================================================

func (s *TaskService) ListAssigned(db *gorm.DB, id auth.Identity, status models.AssignedTaskStatus, page, pageSize int) (*dto.ListResponse[models.AssignedTask], error) {
	items, total, err := s.assigned.FindByUser(db, id.UserID, status, page, pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, page, pageSize), nil
}

func (s *TaskService) Start(db *gorm.DB, id auth.Identity, assignedID string) (*models.AssignedTask, error) {
	return s.advance(db, id, assignedID, models.AssignedTaskStatusAssigned, map[string]interface{}{
		"status":     models.AssignedTaskStatusInProgress,
		"started_at": utcNow(),
	})
}

func (s *TaskService) Complete(db *gorm.DB, id auth.Identity, assignedID string, req *dto.CompleteTaskRequest) (*models.AssignedTask, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	return s.advance(db, id, assignedID, models.AssignedTaskStatusInProgress, map[string]interface{}{
		"status":       models.AssignedTaskStatusCompleted,
		"completed_at": utcNow(),
		"feedback":     optional(req.Feedback),
		"before_image": optional(req.BeforeImage),
		"after_image":  optional(req.AfterImage),
	})
}

// advance moves the caller's own assigned task out of status from.
func (s *TaskService) advance(db *gorm.DB, id auth.Identity, assignedID string, from models.AssignedTaskStatus, fields map[string]interface{}) (*models.AssignedTask, error) {
	current, err := s.assigned.FindByID(db, assignedID)
	if err != nil {
		return nil, translateError(err, "assigned_task")
	}
	if current.UserID != id.UserID {
		return nil, apperrors.ErrNotTaskOwner
	}
	if current.Status != from {
		return nil, apperrors.ErrInvalidStatus("assigned_task",
			"A task that is "+string(current.Status)+" cannot be moved to "+string(fields["status"].(models.AssignedTaskStatus)))
	}

	if err := s.assigned.Transition(db, assignedID, id.UserID, from, fields); err != nil {
		if errors.Is(err, repositories.ErrAssignedTaskConflict) {
			return nil, apperrors.ErrConflict(err, "assigned_task", "The task was changed by someone else. Please reload it.")
		}
		return nil, apperrors.DatabaseError(err)
	}

	updated, err := s.assigned.FindByID(db, assignedID, "Task")
	if err != nil {
		return nil, translateError(err, "assigned_task")
	}
	logger.CtxInfo(ctxOf(db), "🔧 Assigned task updated", "assigned_task_id", assignedID, "status", updated.Status)
	return updated, nil
}
