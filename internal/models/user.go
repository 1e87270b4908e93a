package models

import "time"

type User struct {
	BaseModel
	SoftDelete
	FirstName       string     `gorm:"size:100;not null" json:"first_name"`
	LastName        string     `gorm:"size:100;not null" json:"last_name"`
	Email           string     `gorm:"size:255;not null;uniqueIndex:idx_users_email,where:deleted_at IS NULL" json:"email"`
	Phone           *string    `gorm:"size:50" json:"phone"`
	Address         *string    `gorm:"size:255" json:"address"`
	City            *string    `gorm:"size:100" json:"city"`
	State           *string    `gorm:"size:100" json:"state"`
	Zip             *string    `gorm:"size:20" json:"zip"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Role            UserRole   `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive        bool       `gorm:"not null" json:"is_active"`
	DeactivatedAt   *time.Time `json:"deactivated_at"`
	ContractEndedAt *time.Time `json:"contract_ended_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CanSignIn is false for deactivated and contract-ended accounts.
func (u *User) CanSignIn() bool {
	return u.IsActive && u.ContractEndedAt == nil && u.DeletedAt == nil
}
