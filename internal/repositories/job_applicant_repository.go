package repositories

import (
	"errors"
	"strings"
	"time"

	"poolservice_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrApplicantNotFound = NotFound("job applicant")
	// ErrApplicantStateChanged means a guarded update matched no row because
	// the applicant left the expected state concurrently.
	ErrApplicantStateChanged = errors.New("job applicant state changed")
)

type ApplicantFilter struct {
	Status   models.ApplicantStatus
	Search   string
	Page     int
	PageSize int
}

type JobApplicantRepository interface {
	Create(db *gorm.DB, applicant *models.JobApplicant) error
	FindByID(db *gorm.DB, id interface{}, preload ...string) (*models.JobApplicant, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.JobApplicant, error)
	FindWithFilter(db *gorm.DB, filter ApplicantFilter) ([]models.JobApplicant, int64, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	ExistsBySSN(db *gorm.DB, ssn string) (bool, error)
	ExistsByEIN(db *gorm.DB, ein string) (bool, error)
	Transition(db *gorm.DB, id string, from []models.ApplicantStatus, fields map[string]interface{}) error
	MarkHired(db *gorm.DB, id, userID string, hiredAt time.Time, setAcceptedAt bool) error
	Delete(db *gorm.DB, id interface{}) error
}

type jobApplicantRepository struct {
	*CrudRepository[models.JobApplicant]
}

func NewJobApplicantRepository() JobApplicantRepository {
	return &jobApplicantRepository{CrudRepository: NewCrudRepository[models.JobApplicant](ErrApplicantNotFound)}
}

// FindByIDForUpdate locks the applicant row until the transaction ends.
func (r *jobApplicantRepository) FindByIDForUpdate(db *gorm.DB, id string) (*models.JobApplicant, error) {
	var applicant models.JobApplicant
	err := r.Scoped(db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&applicant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return &applicant, nil
}

func (r *jobApplicantRepository) FindWithFilter(db *gorm.DB, filter ApplicantFilter) ([]models.JobApplicant, int64, error) {
	scopes := []func(*gorm.DB) *gorm.DB{
		Search(filter.Search, "first_name", "last_name", "email", "city"),
	}
	if filter.Status != "" {
		status := filter.Status
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", status) })
	}
	return r.List(db, ListOptions{Page: filter.Page, PageSize: filter.PageSize, Scopes: scopes})
}

func (r *jobApplicantRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	return r.Exists(db, "LOWER(email) = ?", strings.ToLower(email))
}

func (r *jobApplicantRepository) ExistsBySSN(db *gorm.DB, ssn string) (bool, error) {
	return r.Exists(db, "social_security_number = ?", ssn)
}

func (r *jobApplicantRepository) ExistsByEIN(db *gorm.DB, ein string) (bool, error) {
	return r.Exists(db, "ein_number = ?", ein)
}

// Transition updates fields only if the applicant is still in one of from.
func (r *jobApplicantRepository) Transition(db *gorm.DB, id string, from []models.ApplicantStatus, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	result := r.Scoped(db).
		Where("id = ? AND status IN ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return ErrApplicantStateChanged
	}
	return nil
}

// MarkHired links the technician account. The update is conditional on the
// applicant not being hired yet, so exactly one caller can succeed.
func (r *jobApplicantRepository) MarkHired(db *gorm.DB, id, userID string, hiredAt time.Time, setAcceptedAt bool) error {
	fields := map[string]interface{}{
		"status":     models.ApplicantStatusHired,
		"hire":       true,
		"user_id":    userID,
		"hired_at":   hiredAt,
		"updated_at": hiredAt,
	}
	if setAcceptedAt {
		fields["accepted_at"] = hiredAt
	}

	result := r.Scoped(db).
		Where("id = ? AND status IN ? AND user_id IS NULL AND hire = ?", id,
			[]models.ApplicantStatus{models.ApplicantStatusPending, models.ApplicantStatusAccepted}, false).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return ErrApplicantStateChanged
	}
	return nil
}
