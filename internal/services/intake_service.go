package services

import (
	"strings"

	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// IntakeService handles the public lead-capture forms.
type IntakeService struct {
	serviceRequests repositories.ServiceRequestRepository
	messages        repositories.MessageRepository
	applicants      repositories.JobApplicantRepository
	emails          *EmailService
	validator       *validator.Validator
}

func NewIntakeService(
	serviceRequests repositories.ServiceRequestRepository,
	messages repositories.MessageRepository,
	applicants repositories.JobApplicantRepository,
	emails *EmailService,
	v *validator.Validator,
) *IntakeService {
	return &IntakeService{
		serviceRequests: serviceRequests,
		messages:        messages,
		applicants:      applicants,
		emails:          emails,
		validator:       v,
	}
}

// SubmitServiceRequest stores an unassigned service request and notifies the
// submitter and the office.
func (s *IntakeService) SubmitServiceRequest(db *gorm.DB, req *dto.ServiceRequestForm) (*models.ServiceRequest, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	sr := &models.ServiceRequest{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Zip:         strings.TrimSpace(req.Zip),
		Phone:       strings.TrimSpace(req.Phone),
		Service:     strings.TrimSpace(req.Service),
		Description: req.Description,
		Assigned:    false,
	}
	if err := s.serviceRequests.Create(db, sr); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	ctx := ctxOf(db)
	logger.CtxInfo(ctx, "🏊 Service request received", "service_request_id", sr.ID, "service", sr.Service)
	s.emails.ServiceRequestReceived(ctx, sr)
	return sr, nil
}

// SubmitMessage stores an unread contact message.
func (s *IntakeService) SubmitMessage(db *gorm.DB, req *dto.MessageForm) (*models.Message, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	msg := &models.Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   optional(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Body:    req.Message,
	}
	if err := s.messages.Create(db, msg); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxInfo(ctxOf(db), "💬 Contact message received", "message_id", msg.ID)
	return msg, nil
}

// SubmitJobApplication stores a pending applicant from the public form.
func (s *IntakeService) SubmitJobApplication(db *gorm.DB, req *dto.PublicApplicationForm) (*models.JobApplicant, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	draft := draftFromPublic(req)
	if err := checkDraft(s.validator, draft); err != nil {
		return nil, err
	}

	applicant := newApplicant(draft)
	if err := createApplicant(db, s.applicants, applicant); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctxOf(db), "👷 Job application received", "applicant_id", applicant.ID)
	return applicant, nil
}

// createApplicant checks uniqueness and inserts the applicant in one
// transaction.
func createApplicant(db *gorm.DB, repo repositories.JobApplicantRepository, applicant *models.JobApplicant) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if err := checkUnique(tx, repo, applicant); err != nil {
		return err
	}

	if err := repo.Create(tx, applicant); err != nil {
		logger.CtxWithError(ctxOf(db), "Failed to create job applicant", err)
		return translateError(err, "job_applicant")
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}
