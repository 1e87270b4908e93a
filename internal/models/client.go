package models

import "time"

type ClientCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Client struct {
	BaseModel
	SoftDelete
	Name       string          `gorm:"size:150;not null" json:"name"`
	Email      *string         `gorm:"size:255;index" json:"email"`
	Phone      *string         `gorm:"size:50" json:"phone"`
	Address    *string         `gorm:"size:255" json:"address"`
	City       *string         `gorm:"size:100" json:"city"`
	Zip        *string         `gorm:"size:20" json:"zip"`
	CategoryID *uint           `gorm:"index" json:"category_id"`
	Category   *ClientCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Notes      *string         `gorm:"type:text" json:"notes"`
}
