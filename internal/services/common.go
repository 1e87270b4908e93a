package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"poolservice_backend/internal/repositories"
	"poolservice_backend/internal/validator"
	"poolservice_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ctxOf returns the request context carried by db, if any.
func ctxOf(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

// validate runs the struct rules and converts failures into a 422.
func validate(v *validator.Validator, req interface{}) error {
	if err := v.Validate(req); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			return apperrors.ValidationError(vErr.Errors)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// translateError maps repository errors to AppErrors.
func translateError(err error, domain string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrRecordNotFound):
		return apperrors.Wrap(err, apperrors.CodeNotFound, domain, capitalize(err.Error()), http.StatusNotFound)
	case errors.Is(err, repositories.ErrDuplicate):
		return apperrors.ErrAlreadyExists(err)
	default:
		return apperrors.DatabaseError(err)
	}
}

// optional turns blank input into a NULL column value.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
