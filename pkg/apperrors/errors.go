package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError - the error type every service returns to handlers
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New - base constructor
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap - wraps an underlying error. The wrapped error is logged, never rendered.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy with details attached, so shared
// package-level errors are never mutated.
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithError returns a copy wrapping err.
func (e *AppError) WithError(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// Is matches AppErrors by code and domain so that copies made by
// WithDetails/WithError still match their package-level origin.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Domain == t.Domain && e.Message == t.Message
}

// MarshalJSON - Err is intentionally not part of the payload
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// =========================================================================
// Generic factories
// =========================================================================

// InternalError wraps an unexpected system error behind a generic message.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Something went wrong. Please try again later.", http.StatusInternalServerError)
}

// DatabaseError wraps a persistence failure behind a generic message.
func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "system", "Could not save your changes. Please try again later.", http.StatusInternalServerError)
}

// ExternalServiceError wraps a failure of a collaborator such as the mail transport.
func ExternalServiceError(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusBadGateway)
}

// FieldErrors is the details payload of a validation error.
type FieldErrors map[string]string

// ValidationError builds a 422 carrying per-field messages.
func ValidationError(fields map[string]string) *AppError {
	return New(CodeValidationFailed, "validation", "Please correct the highlighted fields.", http.StatusUnprocessableEntity).
		WithDetails(map[string]interface{}{"fields": FieldErrors(fields)})
}

// FieldError is a single-field validation error.
func FieldError(field, message string) *AppError {
	return ValidationError(map[string]string{field: message})
}

// Fields extracts the field map of a validation error, if any.
func Fields(err error) (map[string]string, bool) {
	appErr, ok := AsAppError(err)
	if !ok || (appErr.Code != CodeValidationFailed && appErr.Code != CodeAlreadyExists) {
		return nil, false
	}
	details, ok := appErr.Details.(map[string]interface{})
	if !ok {
		return nil, false
	}
	fields, ok := details["fields"].(FieldErrors)
	return fields, ok
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeBadRequest, "request", message, http.StatusBadRequest)
}

// ConflictFields is a 409 uniqueness conflict reported the same way as a
// validation error, keyed by the conflicting field.
func ConflictFields(fields map[string]string) *AppError {
	return New(CodeAlreadyExists, "validation", "Some values are already in use.", http.StatusConflict).
		WithDetails(map[string]interface{}{"fields": FieldErrors(fields)})
}

// WithInput attaches the submitted values to a validation or conflict error
// so a form can be redisplayed. Other errors are returned unchanged.
func WithInput(err error, input interface{}) error {
	fields, ok := Fields(err)
	if !ok {
		return err
	}
	appErr, _ := AsAppError(err)
	return appErr.WithDetails(map[string]interface{}{
		"fields": FieldErrors(fields),
		"input":  input,
	})
}
