package services

import (
	"errors"
	"strings"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const generatedPasswordLength = 12

// JobApplicantService runs the applicant lifecycle:
// pending -> accepted | rejected, pending | accepted -> hired.
type JobApplicantService struct {
	repo      repositories.JobApplicantRepository
	users     repositories.UserRepository
	emails    *EmailService
	validator *validator.Validator
}

func NewJobApplicantService(
	repo repositories.JobApplicantRepository,
	users repositories.UserRepository,
	emails *EmailService,
	v *validator.Validator,
) *JobApplicantService {
	return &JobApplicantService{
		repo:      repo,
		users:     users,
		emails:    emails,
		validator: v,
	}
}

// HireResult is the hired applicant and the technician account created for it.
type HireResult struct {
	Applicant  *models.JobApplicant `json:"applicant"`
	Technician *models.User         `json:"technician"`
}

// ============================================================================
// Submission
// ============================================================================

// Apply stores the application of a signed-in user. Validation failures
// create nothing; all writes share one transaction.
func (s *JobApplicantService) Apply(db *gorm.DB, id auth.Identity, req *dto.PortalApplicationForm) (*models.JobApplicant, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	draft := draftFromPortal(req)
	if err := checkDraft(s.validator, draft); err != nil {
		return nil, err
	}

	applicant := newApplicant(draft)
	if id.UserID != "" {
		submittedBy := id.UserID
		applicant.SubmittedByID = &submittedBy
	}

	if err := createApplicant(db, s.repo, applicant); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "👷 Job application submitted", "applicant_id", applicant.ID, "user_id", id.UserID)
	return applicant, nil
}

// ============================================================================
// Queries
// ============================================================================

func (s *JobApplicantService) List(db *gorm.DB, query *dto.ApplicantListQuery, page, pageSize int) (*dto.ListResponse[models.JobApplicant], error) {
	if err := validate(s.validator, query); err != nil {
		return nil, err
	}
	items, total, err := s.repo.FindWithFilter(db, repositories.ApplicantFilter{
		Status:   models.ApplicantStatus(query.Status),
		Search:   query.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, page, pageSize), nil
}

func (s *JobApplicantService) Get(db *gorm.DB, id string) (*models.JobApplicant, error) {
	applicant, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "job_applicant")
	}
	return applicant, nil
}

func (s *JobApplicantService) Delete(db *gorm.DB, id string) error {
	return translateError(s.repo.Delete(db, id), "job_applicant")
}

// ============================================================================
// Transitions
// ============================================================================

// Accept moves a pending applicant to accepted.
func (s *JobApplicantService) Accept(db *gorm.DB, id string) (*models.JobApplicant, error) {
	applicant, err := s.transition(db, id, []models.ApplicantStatus{models.ApplicantStatusPending}, map[string]interface{}{
		"status":      models.ApplicantStatusAccepted,
		"accepted_at": utcNow(),
	})
	if err != nil {
		return nil, err
	}

	ctx := ctxOf(db)
	logger.CtxInfo(ctx, "✅ Applicant accepted", "applicant_id", id)
	s.emails.ApplicantAccepted(ctx, applicant)
	return applicant, nil
}

// Reject moves a pending or accepted applicant to rejected. A non-blank
// reason is stored verbatim, a blank one as NULL.
func (s *JobApplicantService) Reject(db *gorm.DB, id string, req *dto.RejectApplicantRequest) (*models.JobApplicant, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	var reason interface{}
	if strings.TrimSpace(req.Reason) != "" {
		reason = req.Reason
	}

	applicant, err := s.transition(db, id,
		[]models.ApplicantStatus{models.ApplicantStatusPending, models.ApplicantStatusAccepted},
		map[string]interface{}{
			"status":           models.ApplicantStatusRejected,
			"rejected_at":      utcNow(),
			"rejection_reason": reason,
		})
	if err != nil {
		return nil, err
	}

	ctx := ctxOf(db)
	logger.CtxInfo(ctx, "🚫 Applicant rejected", "applicant_id", id, "with_reason", reason != nil)
	s.emails.ApplicantRejected(ctx, applicant)
	return applicant, nil
}

// transition applies a guarded status change and returns the updated row.
func (s *JobApplicantService) transition(db *gorm.DB, id string, from []models.ApplicantStatus, fields map[string]interface{}) (*models.JobApplicant, error) {
	current, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "job_applicant")
	}
	if !statusIn(current.Status, from) {
		return nil, invalidTransition(current.Status, fields["status"])
	}

	if err := s.repo.Transition(db, id, from, fields); err != nil {
		if errors.Is(err, repositories.ErrApplicantStateChanged) {
			return nil, apperrors.ErrConflict(err, "job_applicant", "The application was changed by someone else. Please reload it.")
		}
		return nil, apperrors.DatabaseError(err)
	}

	updated, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "job_applicant")
	}
	return updated, nil
}

// Hire provisions a Technician account for the applicant and marks the
// applicant hired, both in one transaction. Hiring is allowed from pending
// and accepted; a second hire fails with a conflict and creates nothing.
func (s *JobApplicantService) Hire(db *gorm.DB, id string) (*HireResult, error) {
	ctx := ctxOf(db)

	password, err := auth.GeneratePassword(generatedPasswordLength)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	applicant, err := s.repo.FindByIDForUpdate(tx, id)
	if err != nil {
		return nil, translateError(err, "job_applicant")
	}
	if applicant.IsHired() {
		return nil, apperrors.ErrApplicantAlreadyHired
	}
	if applicant.Status == models.ApplicantStatusRejected {
		return nil, invalidTransition(applicant.Status, models.ApplicantStatusHired)
	}

	taken, err := s.users.ExistsByEmail(tx, applicant.Email)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if taken {
		return nil, apperrors.ErrHireEmailTaken
	}

	technician := &models.User{
		FirstName:    applicant.FirstName,
		LastName:     applicant.LastName,
		Email:        applicant.Email,
		Phone:        applicant.Phone,
		Address:      applicant.Address,
		City:         applicant.City,
		State:        applicant.State,
		Zip:          applicant.Zip,
		PasswordHash: hash,
		Role:         models.UserRoleTechnician,
		IsActive:     true,
	}
	if err := s.users.Create(tx, technician); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrHireEmailTaken
		}
		logger.CtxWithError(ctx, "Failed to create technician account", err, "applicant_id", id)
		return nil, apperrors.DatabaseError(err)
	}

	hiredAt := utcNow()
	if err := s.repo.MarkHired(tx, id, technician.ID, hiredAt, applicant.AcceptedAt == nil); err != nil {
		if errors.Is(err, repositories.ErrApplicantStateChanged) {
			return nil, apperrors.ErrApplicantAlreadyHired
		}
		logger.CtxWithError(ctx, "Failed to mark applicant hired", err, "applicant_id", id)
		return nil, apperrors.DatabaseError(err)
	}

	if err := tx.Commit().Error; err != nil {
		logger.CtxWithError(ctx, "Failed to commit hire", err, "applicant_id", id)
		return nil, apperrors.DatabaseError(err)
	}

	hired, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "job_applicant")
	}

	logger.CtxInfo(ctx, "🎉 Applicant hired", "applicant_id", id, "technician_id", technician.ID)
	s.emails.ApplicantHired(ctx, hired, password)

	return &HireResult{Applicant: hired, Technician: technician}, nil
}

func statusIn(status models.ApplicantStatus, set []models.ApplicantStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

func invalidTransition(from models.ApplicantStatus, to interface{}) error {
	return apperrors.ErrInvalidStatus("job_applicant",
		"An applicant that is "+string(from)+" cannot be moved to "+toString(to))
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case models.ApplicantStatus:
		return string(t)
	case string:
		return t
	default:
		return "the requested status"
	}
}
