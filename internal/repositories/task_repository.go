package repositories

import (
	"errors"
	"time"

	"poolservice_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = NotFound("task")
	ErrAssignedTaskNotFound = NotFound("assigned task")
	ErrAssignedTaskConflict = errors.New("assigned task state changed")
)

type TaskFilter struct {
	Status           string
	UserID           string
	ServiceRequestID string
	Page             int
	PageSize         int
}

type TaskRepository interface {
	Create(db *gorm.DB, task *models.Task) error
	FindByID(db *gorm.DB, id interface{}, preload ...string) (*models.Task, error)
	FindWithFilter(db *gorm.DB, filter TaskFilter) ([]models.Task, int64, error)
	Update(db *gorm.DB, task *models.Task) error
	Delete(db *gorm.DB, id interface{}) error
}

type taskRepository struct {
	*CrudRepository[models.Task]
}

func NewTaskRepository() TaskRepository {
	return &taskRepository{CrudRepository: NewCrudRepository[models.Task](ErrTaskNotFound)}
}

func (r *taskRepository) FindWithFilter(db *gorm.DB, filter TaskFilter) ([]models.Task, int64, error) {
	var scopes []func(*gorm.DB) *gorm.DB
	if filter.Status != "" {
		status := filter.Status
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", status) })
	}
	if filter.UserID != "" {
		userID := filter.UserID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", userID) })
	}
	if filter.ServiceRequestID != "" {
		requestID := filter.ServiceRequestID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("service_request_id = ?", requestID) })
	}
	return r.List(db, ListOptions{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Preload:  []string{"ServiceRequest"},
		Scopes:   scopes,
	})
}

type AssignedTaskRepository interface {
	Create(db *gorm.DB, assigned *models.AssignedTask) error
	FindByID(db *gorm.DB, id interface{}, preload ...string) (*models.AssignedTask, error)
	FindByUser(db *gorm.DB, userID string, status models.AssignedTaskStatus, page, pageSize int) ([]models.AssignedTask, int64, error)
	Transition(db *gorm.DB, id, userID string, from models.AssignedTaskStatus, fields map[string]interface{}) error
	Delete(db *gorm.DB, id interface{}) error
}

type assignedTaskRepository struct {
	*CrudRepository[models.AssignedTask]
}

func NewAssignedTaskRepository() AssignedTaskRepository {
	return &assignedTaskRepository{CrudRepository: NewCrudRepository[models.AssignedTask](ErrAssignedTaskNotFound)}
}

func (r *assignedTaskRepository) FindByUser(db *gorm.DB, userID string, status models.AssignedTaskStatus, page, pageSize int) ([]models.AssignedTask, int64, error) {
	scopes := []func(*gorm.DB) *gorm.DB{
		func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", userID) },
	}
	if status != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", status) })
	}
	return r.List(db, ListOptions{
		Page:     page,
		PageSize: pageSize,
		Preload:  []string{"Task", "Task.ServiceRequest"},
		Scopes:   scopes,
	})
}

// Transition moves the owner's assigned task out of status from.
func (r *assignedTaskRepository) Transition(db *gorm.DB, id, userID string, from models.AssignedTaskStatus, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	result := r.Scoped(db).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, from).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return ErrAssignedTaskConflict
	}
	return nil
}
