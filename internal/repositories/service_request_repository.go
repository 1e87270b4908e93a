package repositories

import (
	"errors"

	"poolservice_backend/internal/models"

	"gorm.io/gorm"
)

var ErrServiceRequestNotFound = NotFound("service request")

type ServiceRequestFilter struct {
	Assigned *bool
	Search   string
	Page     int
	PageSize int
}

type ServiceRequestRepository interface {
	Create(db *gorm.DB, request *models.ServiceRequest) error
	FindByID(db *gorm.DB, id interface{}, preload ...string) (*models.ServiceRequest, error)
	FindWithTasks(db *gorm.DB, id string) (*models.ServiceRequest, error)
	FindWithFilter(db *gorm.DB, filter ServiceRequestFilter) ([]models.ServiceRequest, int64, error)
	Update(db *gorm.DB, request *models.ServiceRequest) error
	MarkAssigned(db *gorm.DB, id, technicianID string) error
	Delete(db *gorm.DB, id interface{}) error
}

type serviceRequestRepository struct {
	*CrudRepository[models.ServiceRequest]
}

func NewServiceRequestRepository() ServiceRequestRepository {
	return &serviceRequestRepository{CrudRepository: NewCrudRepository[models.ServiceRequest](ErrServiceRequestNotFound)}
}

func (r *serviceRequestRepository) FindWithTasks(db *gorm.DB, id string) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := r.Scoped(db).
		Preload("Tasks", NotDeleted).
		Preload("Client").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *serviceRequestRepository) FindWithFilter(db *gorm.DB, filter ServiceRequestFilter) ([]models.ServiceRequest, int64, error) {
	scopes := []func(*gorm.DB) *gorm.DB{
		Search(filter.Search, "name", "email", "service", "zip"),
	}
	if filter.Assigned != nil {
		assigned := *filter.Assigned
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("assigned = ?", assigned) })
	}
	return r.List(db, ListOptions{Page: filter.Page, PageSize: filter.PageSize, Scopes: scopes})
}

func (r *serviceRequestRepository) MarkAssigned(db *gorm.DB, id, technicianID string) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"assigned": true,
		"user_id":  technicianID,
	})
}
