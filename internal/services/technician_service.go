package services

import (
	"context"
	"errors"

	"poolservice_backend/internal/logger"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/services/dto"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// TechnicianService manages technician accounts: active <-> inactive, and
// the terminal contract-ended state.
type TechnicianService struct {
	users  repositories.UserRepository
	emails *EmailService
}

func NewTechnicianService(users repositories.UserRepository, emails *EmailService) *TechnicianService {
	return &TechnicianService{users: users, emails: emails}
}

func (s *TechnicianService) List(db *gorm.DB, active *bool, search string, page, pageSize int) (*dto.ListResponse[models.User], error) {
	items, total, err := s.users.FindWithFilter(db, repositories.UserFilter{
		Role:     models.UserRoleTechnician,
		IsActive: active,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, page, pageSize), nil
}

// Deactivate blocks the technician from signing in.
func (s *TechnicianService) Deactivate(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.technician(db, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidStatus("technician", "The technician is already inactive")
	}

	wasActive := true
	if err := s.update(db, id, &wasActive, map[string]interface{}{
		"is_active":      false,
		"deactivated_at": utcNow(),
	}); err != nil {
		return nil, err
	}

	return s.afterChange(db, id, "⏸️ Technician deactivated", s.emails.TechnicianDeactivated)
}

// Activate lifts a deactivation.
func (s *TechnicianService) Activate(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.technician(db, id)
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		return nil, apperrors.ErrInvalidStatus("technician", "The technician is already active")
	}

	wasActive := false
	if err := s.update(db, id, &wasActive, map[string]interface{}{
		"is_active":      true,
		"deactivated_at": nil,
	}); err != nil {
		return nil, err
	}

	return s.afterChange(db, id, "▶️ Technician activated", s.emails.TechnicianActivated)
}

// EndContract permanently revokes access.
func (s *TechnicianService) EndContract(db *gorm.DB, id string) (*models.User, error) {
	if _, err := s.technician(db, id); err != nil {
		return nil, err
	}

	if err := s.update(db, id, nil, map[string]interface{}{
		"is_active":         false,
		"contract_ended_at": utcNow(),
	}); err != nil {
		return nil, err
	}

	return s.afterChange(db, id, "🏁 Technician contract ended", s.emails.TechnicianContractEnded)
}

// technician loads id and checks it is a technician whose contract is
// still running.
func (s *TechnicianService) technician(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.users.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "technician")
	}
	if user.Role != models.UserRoleTechnician {
		return nil, apperrors.ErrNotATechnician
	}
	if user.ContractEndedAt != nil {
		return nil, apperrors.ErrContractEnded
	}
	return user, nil
}

// update runs a guarded update; losing a race to another request is a 409.
func (s *TechnicianService) update(db *gorm.DB, id string, wasActive *bool, fields map[string]interface{}) error {
	err := s.users.UpdateTechnician(db, id, wasActive, fields)
	if errors.Is(err, repositories.ErrTechnicianStateChanged) {
		return apperrors.ErrConflict(err, "technician", "The technician was changed by someone else. Please reload it.")
	}
	return translateError(err, "technician")
}

func (s *TechnicianService) afterChange(db *gorm.DB, id, message string, notify func(context.Context, *models.User)) (*models.User, error) {
	user, err := s.users.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "technician")
	}
	ctx := ctxOf(db)
	logger.CtxInfo(ctx, message, "technician_id", id)
	notify(ctx, user)
	return user, nil
}
