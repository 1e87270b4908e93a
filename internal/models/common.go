package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the uuid on the application side so the schema does
// not depend on database extensions.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// SoftDelete marks primary business entities. Repositories exclude rows with
// a non-null deleted_at from every read and turn deletes into an update.
type SoftDelete struct {
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (SoftDelete) softDeletable() {}

type SoftDeletable interface {
	softDeletable()
}

// IsSoftDeletable reports whether v (a model or pointer to one) embeds SoftDelete.
func IsSoftDeletable(v any) bool {
	_, ok := v.(SoftDeletable)
	return ok
}
