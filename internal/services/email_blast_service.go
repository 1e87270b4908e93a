package services

import (
	"strings"
	"unicode"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EmailBlastService struct {
	repo      repositories.EmailBlastRepository
	emails    *EmailService
	validator *validator.Validator
}

func NewEmailBlastService(repo repositories.EmailBlastRepository, emails *EmailService, v *validator.Validator) *EmailBlastService {
	return &EmailBlastService{repo: repo, emails: emails, validator: v}
}

// ParseRecipients splits free text on commas, semicolons and whitespace and
// returns the lower-cased addresses in first-seen order without duplicates.
func ParseRecipients(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		addr := strings.ToLower(strings.TrimSpace(p))
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	return out
}

// Send records the blast as pending, delivers it and stores the outcome.
// Nothing is sent when the audit row cannot be written; a transport failure
// is returned as a 502 once the row says failed.
func (s *EmailBlastService) Send(db *gorm.DB, sender auth.Identity, req *dto.EmailBlastRequest) (*models.EmailBlast, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	recipients := ParseRecipients(req.Recipients)
	if len(recipients) == 0 {
		return nil, apperrors.FieldError("recipients", "Enter at least one email address")
	}
	var invalid []string
	for _, addr := range recipients {
		if err := s.validator.Var(addr, "email"); err != nil {
			invalid = append(invalid, addr)
		}
	}
	if len(invalid) > 0 {
		return nil, apperrors.FieldError("recipients", "Invalid email addresses: "+strings.Join(invalid, ", "))
	}

	ctx := ctxOf(db)
	blast := &models.EmailBlast{
		Subject:         req.Subject,
		Message:         req.Message,
		Recipients:      recipients,
		RecipientsCount: len(recipients),
		Status:          models.BlastStatusPending,
		SentByID:        sender.UserID,
	}
	if err := s.repo.Create(db, blast); err != nil {
		logger.CtxWithError(ctx, "Failed to record email blast", err)
		return nil, apperrors.DatabaseError(err)
	}

	sendErr := s.emails.SendBlast(ctx, req.Subject, req.Message, recipients)

	blast.Status = models.BlastStatusFailed
	if sendErr == nil {
		sentAt := utcNow()
		blast.Status = models.BlastStatusSent
		blast.SentAt = &sentAt
	}
	fields := map[string]interface{}{"status": blast.Status, "sent_at": blast.SentAt}
	if err := s.repo.UpdateFields(db, blast.ID, fields); err != nil {
		// The row stays pending; the mail outcome above still stands.
		logger.CtxWithError(ctx, "Failed to record email blast outcome", err,
			"email_blast_id", blast.ID,
			"status", blast.Status,
		)
	}

	if sendErr != nil {
		return blast, apperrors.ExternalServiceError(sendErr, "email_blast", "The mail server did not accept the message. The attempt was recorded.")
	}

	logger.CtxInfo(ctx, "📣 Email blast recorded", "email_blast_id", blast.ID, "recipients", blast.RecipientsCount)
	return blast, nil
}

func (s *EmailBlastService) List(db *gorm.DB, page, pageSize int) (*dto.ListResponse[models.EmailBlast], error) {
	items, total, err := s.repo.List(db, repositories.ListOptions{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, page, pageSize), nil
}

func (s *EmailBlastService) Get(db *gorm.DB, id string) (*models.EmailBlast, error) {
	blast, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "email_blast")
	}
	return blast, nil
}

func (s *EmailBlastService) Delete(db *gorm.DB, id string) error {
	return translateError(s.repo.Delete(db, id), "email_blast")
}
