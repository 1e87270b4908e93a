package apperrors

import (
	"net/http"
)

// =========================================================================
// Factories used by services to translate repository errors
// =========================================================================

// ErrNotFound - 404 for a missing (or soft-deleted) resource
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - 409
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - generic 409
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - 400
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - 409, the entity is in the wrong state for the operation
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Auth
// =========================================================================

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrAccountInactive = New(
	CodeAccountInactive,
	"auth",
	"Your account is inactive. Please contact the office.",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// =========================================================================
// Intake
// =========================================================================

var ErrRateLimited = New(
	CodeLimitExceeded,
	"intake",
	"Too many submissions. Please try again in a minute.",
	http.StatusTooManyRequests,
)

// =========================================================================
// Job applicants
// =========================================================================

var ErrApplicantAlreadyHired = New(
	CodeConflict,
	"job_applicant",
	"This applicant has already been hired",
	http.StatusConflict,
)

var ErrHireEmailTaken = New(
	CodeConflict,
	"job_applicant",
	"A user account with this email already exists",
	http.StatusConflict,
)

// =========================================================================
// Users and technicians
// =========================================================================

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"user",
	"Email already in use",
	http.StatusConflict,
)

var ErrNotATechnician = New(
	CodeInvalidOperation,
	"technician",
	"The user is not a technician",
	http.StatusBadRequest,
)

var ErrContractEnded = New(
	CodeInvalidStatus,
	"technician",
	"The technician's contract has ended",
	http.StatusConflict,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"user",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// =========================================================================
// Tasks
// =========================================================================

var ErrNotTaskOwner = New(
	CodeForbidden,
	"assigned_task",
	"This task is assigned to another technician",
	http.StatusForbidden,
)
