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

type UserService struct {
	repo      repositories.UserRepository
	validator *validator.Validator
}

func NewUserService(repo repositories.UserRepository, v *validator.Validator) *UserService {
	return &UserService{repo: repo, validator: v}
}

func (s *UserService) List(db *gorm.DB, filter repositories.UserFilter) (*dto.ListResponse[models.User], error) {
	items, total, err := s.repo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListResponse(items, total, filter.Page, filter.PageSize), nil
}

func (s *UserService) Get(db *gorm.DB, id string) (*models.User, error) {
	user, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "user")
	}
	return user, nil
}

func (s *UserService) Create(db *gorm.DB, req *dto.CreateUserRequest) (*models.User, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        optional(req.Phone),
		Address:      optional(req.Address),
		City:         optional(req.City),
		State:        optional(req.State),
		Zip:          optional(req.Zip),
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		IsActive:     true,
	}
	if err := s.repo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, translateError(err, "user")
	}

	logger.CtxInfo(ctxOf(db), "👤 User created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Update changes profile and role. An administrator cannot change their
// own role.
func (s *UserService) Update(db *gorm.DB, actor auth.Identity, id string, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, translateError(err, "user")
	}
	if actor.UserID == user.ID && models.UserRole(req.Role) != user.Role {
		return nil, apperrors.ErrCannotModifySelf
	}

	newEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.EqualFold(newEmail, user.Email) {
		taken, err := s.repo.ExistsByEmail(db, newEmail)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		if taken {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Email = newEmail
	user.Phone = optional(req.Phone)
	user.Address = optional(req.Address)
	user.City = optional(req.City)
	user.State = optional(req.State)
	user.Zip = optional(req.Zip)
	user.Role = models.UserRole(req.Role)
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, translateError(err, "user")
	}
	return user, nil
}

func (s *UserService) Delete(db *gorm.DB, actor auth.Identity, id string) error {
	if actor.UserID == id {
		return apperrors.ErrCannotModifySelf
	}
	return translateError(s.repo.Delete(db, id), "user")
}
