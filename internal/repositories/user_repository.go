package repositories

import (
	"errors"
	"strings"
	"time"

	"poolservice_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = NotFound("user")
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTechnicianStateChanged means a guarded technician update matched no
	// row because a concurrent request changed it first.
	ErrTechnicianStateChanged = errors.New("technician state changed")
)

type UserFilter struct {
	Role     models.UserRole
	IsActive *bool
	Search   string
	Page     int
	PageSize int
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id interface{}, preload ...string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	FindWithFilter(db *gorm.DB, filter UserFilter) ([]models.User, int64, error)
	Update(db *gorm.DB, user *models.User) error
	UpdateFields(db *gorm.DB, id interface{}, fields map[string]interface{}) error
	TouchLastLogin(db *gorm.DB, id string) error
	UpdateTechnician(db *gorm.DB, id string, wasActive *bool, fields map[string]interface{}) error
	Delete(db *gorm.DB, id interface{}) error
}

type userRepository struct {
	*CrudRepository[models.User]
}

func NewUserRepository() UserRepository {
	return &userRepository{CrudRepository: NewCrudRepository[models.User](ErrUserNotFound)}
}

// Create rejects a live account with the same email.
func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	exists, err := r.ExistsByEmail(db, user.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}
	if err := r.CrudRepository.Create(db, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := r.Scoped(db).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	return r.Exists(db, "LOWER(email) = ?", strings.ToLower(email))
}

func (r *userRepository) FindWithFilter(db *gorm.DB, filter UserFilter) ([]models.User, int64, error) {
	scopes := []func(*gorm.DB) *gorm.DB{
		Search(filter.Search, "first_name", "last_name", "email"),
	}
	if filter.Role != "" {
		role := filter.Role
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("role = ?", role) })
	}
	if filter.IsActive != nil {
		active := *filter.IsActive
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", active) })
	}

	return r.List(db, ListOptions{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Order:    "last_name ASC, first_name ASC",
		Scopes:   scopes,
	})
}

func (r *userRepository) TouchLastLogin(db *gorm.DB, id string) error {
	return r.UpdateFields(db, id, map[string]interface{}{"last_login_at": time.Now().UTC()})
}

// UpdateTechnician applies fields to a technician whose contract is still
// running and, when wasActive is set, whose is_active still equals it.
func (r *userRepository) UpdateTechnician(db *gorm.DB, id string, wasActive *bool, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	q := r.Scoped(db).Where("id = ? AND role = ? AND contract_ended_at IS NULL", id, models.UserRoleTechnician)
	if wasActive != nil {
		q = q.Where("is_active = ?", *wasActive)
	}
	result := q.Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return ErrTechnicianStateChanged
	}
	return nil
}
