package repositories

import (
	"poolservice_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEmailBlastNotFound = NotFound("email blast")

type EmailBlastRepository interface {
	Create(db *gorm.DB, blast *models.EmailBlast) error
	FindByID(db *gorm.DB, id interface{}, preload ...string) (*models.EmailBlast, error)
	List(db *gorm.DB, opts ListOptions) ([]models.EmailBlast, int64, error)
	UpdateFields(db *gorm.DB, id interface{}, fields map[string]interface{}) error
	Delete(db *gorm.DB, id interface{}) error
}

func NewEmailBlastRepository() EmailBlastRepository {
	return NewCrudRepository[models.EmailBlast](ErrEmailBlastNotFound)
}
