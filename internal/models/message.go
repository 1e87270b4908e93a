package models

import (
	"time"

	"gorm.io/datatypes"
)

// Message is a contact-form message from the public site.
type Message struct {
	BaseModel
	SoftDelete
	Name      string     `gorm:"size:30;not null" json:"name"`
	Email     string     `gorm:"size:255;not null" json:"email"`
	Phone     *string    `gorm:"size:50" json:"phone"`
	Subject   string     `gorm:"size:255;not null" json:"subject"`
	Body      string     `gorm:"column:message;type:text;not null" json:"message"`
	Read      bool       `gorm:"not null;default:false" json:"read"`
	Replied   bool       `gorm:"not null;default:false" json:"replied"`
	ReadAt    *time.Time `json:"read_at"`
	RepliedAt *time.Time `json:"replied_at"`
}

type EmailBlast struct {
	BaseModel
	SoftDelete
	Subject         string                      `gorm:"size:255;not null" json:"subject"`
	Message         string                      `gorm:"type:text;not null" json:"message"`
	Recipients      datatypes.JSONSlice[string] `json:"recipients"`
	RecipientsCount int                         `gorm:"not null" json:"recipients_count"`
	Status          BlastStatus                 `gorm:"type:varchar(20);not null" json:"status"`
	SentAt          *time.Time                  `json:"sent_at"`
	SentByID        string                      `gorm:"type:uuid;not null;index" json:"sent_by_id"`
}
