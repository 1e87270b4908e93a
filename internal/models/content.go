package models

import "time"

// About is a section of the public "about us" page.
type About struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Body        string  `gorm:"type:text;not null" json:"body"`
	ImagePath   *string `gorm:"size:500" json:"image_path"`
	Position    int     `gorm:"not null;default:0" json:"position"`
	IsPublished bool    `gorm:"not null" json:"is_published"`
}

func (About) TableName() string { return "about" }

type CompanyInfo struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:150;not null" json:"name"`
	Email         *string   `gorm:"size:255" json:"email"`
	Phone         *string   `gorm:"size:50" json:"phone"`
	Address       *string   `gorm:"size:255" json:"address"`
	BusinessHours *string   `gorm:"size:255" json:"business_hours"`
	Description   *string   `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (CompanyInfo) TableName() string { return "company_info" }

type SocialNetwork struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	Icon      *string   `gorm:"size:100" json:"icon"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Gallery struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	ImagePath   string  `gorm:"size:500;not null" json:"image_path"`
	Position    int     `gorm:"not null;default:0" json:"position"`
	IsPublished bool    `gorm:"not null" json:"is_published"`
}

func (Gallery) TableName() string { return "gallery" }

type Popup struct {
	BaseModel
	Title     string     `gorm:"size:255;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	ImagePath *string    `gorm:"size:500" json:"image_path"`
	Link      *string    `gorm:"size:500" json:"link"`
	IsActive  bool       `gorm:"not null;default:false" json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// Visible reports whether the popup should be shown at t.
func (p *Popup) Visible(t time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartsAt != nil && t.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && t.After(*p.EndsAt) {
		return false
	}
	return true
}
