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

type AuthService struct {
	users      repositories.UserRepository
	tokens     *auth.TokenManager
	authorizer *auth.Authorizer
	validator  *validator.Validator
}

func NewAuthService(users repositories.UserRepository, tokens *auth.TokenManager, authorizer *auth.Authorizer, v *validator.Validator) *AuthService {
	return &AuthService{users: users, tokens: tokens, authorizer: authorizer, validator: v}
}

// Login exchanges credentials for an access token. Deactivated and
// contract-ended accounts cannot sign in.
func (s *AuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	ctx := ctxOf(db)

	user, err := s.users.FindByEmail(db, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxWarn(ctx, "Login failed: unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "Login failed: wrong password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.CanSignIn() {
		logger.CtxWarn(ctx, "Login refused: inactive account", "user_id", user.ID)
		return nil, apperrors.ErrAccountInactive
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.users.TouchLastLogin(db, user.ID); err != nil {
		logger.CtxWithError(ctx, "Failed to record last login", err, "user_id", user.ID)
	}

	logger.CtxInfo(ctx, "🔑 User signed in", "user_id", user.ID, "role", user.Role)
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        toUserResponse(user),
	}, nil
}

// Authenticate resolves a token into the identity of a user that may still
// sign in.
func (s *AuthService) Authenticate(db *gorm.DB, token string) (*models.User, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	user, err := s.users.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.DatabaseError(err)
	}
	if !user.CanSignIn() {
		return nil, apperrors.ErrAccountInactive
	}
	return user, nil
}

// Me describes the request identity and what it may do.
func (s *AuthService) Me(db *gorm.DB, id auth.Identity) (*dto.MeResponse, error) {
	user, err := s.users.FindByID(db, id.UserID)
	if err != nil {
		return nil, translateError(err, "user")
	}
	return &dto.MeResponse{
		User:         toUserResponse(user),
		Capabilities: s.authorizer.Capabilities(id),
	}, nil
}

// EnsureAdmin creates the first administrator when no user has that email.
func (s *AuthService) EnsureAdmin(db *gorm.DB, email, password string) (*models.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, apperrors.FieldError("email", "This field is required")
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, false, apperrors.FieldError("password", "Must be at least 8 characters long")
	}

	existing, err := s.users.FindByEmail(db, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, false, apperrors.DatabaseError(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}
	admin := &models.User{
		FirstName:    "Site",
		LastName:     "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(db, admin); err != nil {
		return nil, false, translateError(err, "user")
	}
	return admin, true, nil
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
	}
}
