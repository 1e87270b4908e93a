package repositories

import (
	"time"

	"poolservice_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = NotFound("message")

type MessageFilter struct {
	Read     *bool
	Search   string
	Page     int
	PageSize int
}

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	FindByID(db *gorm.DB, id interface{}, preload ...string) (*models.Message, error)
	FindWithFilter(db *gorm.DB, filter MessageFilter) ([]models.Message, int64, error)
	MarkRead(db *gorm.DB, id string) error
	MarkReplied(db *gorm.DB, id string) error
	CountUnread(db *gorm.DB) (int64, error)
	Delete(db *gorm.DB, id interface{}) error
}

type messageRepository struct {
	*CrudRepository[models.Message]
}

func NewMessageRepository() MessageRepository {
	return &messageRepository{CrudRepository: NewCrudRepository[models.Message](ErrMessageNotFound)}
}

func (r *messageRepository) FindWithFilter(db *gorm.DB, filter MessageFilter) ([]models.Message, int64, error) {
	scopes := []func(*gorm.DB) *gorm.DB{
		Search(filter.Search, "name", "email", "subject"),
	}
	if filter.Read != nil {
		read := *filter.Read
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("read = ?", read) })
	}
	return r.List(db, ListOptions{Page: filter.Page, PageSize: filter.PageSize, Scopes: scopes})
}

func (r *messageRepository) MarkRead(db *gorm.DB, id string) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"read":    true,
		"read_at": time.Now().UTC(),
	})
}

// MarkReplied also marks the message read.
func (r *messageRepository) MarkReplied(db *gorm.DB, id string) error {
	now := time.Now().UTC()
	return r.UpdateFields(db, id, map[string]interface{}{
		"read":       true,
		"read_at":    gorm.Expr("COALESCE(read_at, ?)", now),
		"replied":    true,
		"replied_at": now,
	})
}

func (r *messageRepository) CountUnread(db *gorm.DB) (int64, error) {
	var count int64
	err := r.Scoped(db).Where("read = ?", false).Count(&count).Error
	return count, err
}
