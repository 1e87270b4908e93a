package services

import (
	"context"
	"strings"

	"poolservice_backend/internal/config"
	"poolservice_backend/internal/email"
	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/models"
)

// EmailService sends the notification emails of the business workflows.
// Notifications are fire-and-forget: failures are logged and never returned.
type EmailService struct {
	provider    email.Provider
	companyName string
	fromEmail   string
	staffEmail  string
	loginURL    string
}

func NewEmailService(provider email.Provider, cfg *config.Config) *EmailService {
	return &EmailService{
		provider:    provider,
		companyName: cfg.Email.FromName,
		fromEmail:   cfg.Email.FromEmail,
		staffEmail:  cfg.Email.StaffEmail,
		loginURL:    cfg.LoginURL(),
	}
}

// Sender is the visible address of outgoing mail.
func (s *EmailService) Sender() string {
	return s.fromEmail
}

// ============================================================================
// Service requests
// ============================================================================

func (s *EmailService) ServiceRequestReceived(ctx context.Context, req *models.ServiceRequest) {
	s.notify(ctx, req.Email, "We received your service request", email.TemplateServiceRequestAck, email.TemplateData{
		"Name":        req.Name,
		"Service":     req.Service,
		"Description": req.Description,
	})

	if s.staffEmail == "" {
		return
	}
	s.notify(ctx, s.staffEmail, "New service request from "+req.Name, email.TemplateServiceRequestAlert, email.TemplateData{
		"Name":        req.Name,
		"Email":       req.Email,
		"Phone":       req.Phone,
		"Zip":         req.Zip,
		"Service":     req.Service,
		"Description": req.Description,
	})
}

// ============================================================================
// Job applicants
// ============================================================================

func (s *EmailService) ApplicantAccepted(ctx context.Context, a *models.JobApplicant) {
	s.notify(ctx, a.Email, "Your application has been accepted", email.TemplateApplicantAccepted, email.TemplateData{
		"Name": a.FullName(),
	})
}

func (s *EmailService) ApplicantRejected(ctx context.Context, a *models.JobApplicant) {
	data := email.TemplateData{"Name": a.FullName()}
	if a.RejectionReason != nil {
		data["Reason"] = *a.RejectionReason
	}
	s.notify(ctx, a.Email, "Update on your application", email.TemplateApplicantRejected, data)
}

// ApplicantHired sends the technician credentials of the new account.
func (s *EmailService) ApplicantHired(ctx context.Context, a *models.JobApplicant, password string) {
	s.notify(ctx, a.Email, "Welcome to the team", email.TemplateApplicantHired, email.TemplateData{
		"Name":     a.FullName(),
		"Email":    a.Email,
		"Password": password,
		"LoginURL": s.loginURL,
	})
}

// ============================================================================
// Technicians
// ============================================================================

func (s *EmailService) TechnicianActivated(ctx context.Context, u *models.User) {
	s.notify(ctx, u.Email, "Your account has been activated", email.TemplateTechnicianActivated, email.TemplateData{
		"Name":     u.FullName(),
		"LoginURL": s.loginURL,
	})
}

func (s *EmailService) TechnicianDeactivated(ctx context.Context, u *models.User) {
	s.notify(ctx, u.Email, "Your account has been deactivated", email.TemplateTechnicianDeactivated, email.TemplateData{
		"Name": u.FullName(),
	})
}

func (s *EmailService) TechnicianContractEnded(ctx context.Context, u *models.User) {
	s.notify(ctx, u.Email, "Your contract has ended", email.TemplateContractEnded, email.TemplateData{
		"Name": u.FullName(),
	})
}

// ============================================================================
// Blasts
// ============================================================================

// SendBlast sends one message to every recipient as Bcc, with the sender as
// the only visible recipient. Unlike notifications the error is returned.
func (s *EmailService) SendBlast(ctx context.Context, subject, html string, recipients []string) error {
	msg := &email.Email{
		To:       []string{s.fromEmail},
		Bcc:      recipients,
		Subject:  subject,
		HTMLBody: html,
	}
	if err := s.provider.Send(msg); err != nil {
		logger.CtxWithError(ctx, "❌ Email blast failed", err,
			"subject", subject,
			"recipients", len(recipients),
		)
		return err
	}
	logger.CtxInfo(ctx, "✅ Email blast sent", "subject", subject, "recipients", len(recipients))
	return nil
}

func (s *EmailService) notify(ctx context.Context, to, subject, template string, data email.TemplateData) {
	if strings.TrimSpace(to) == "" {
		return
	}
	data["CompanyName"] = s.companyName

	if err := s.provider.SendTemplate([]string{to}, subject, template, data); err != nil {
		logger.CtxWithError(ctx, "❌ Failed to send notification", err,
			"template", template,
			"to", to,
		)
		return
	}
	logger.CtxDebug(ctx, "📧 Notification sent", "template", template, "to", to)
}
