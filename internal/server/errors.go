// Package server provides the HTTP REST API backing the résumé editor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/ingestion"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/schemas"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrResumeNotFound indicates the résumé does not exist or belongs to someone else
type ErrResumeNotFound struct {
	ResumeID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// ErrForbidden indicates an authenticated caller acting on another user's data
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "forbidden"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists *ErrEmailAlreadyExists
		badCreds    *ErrInvalidCredentials
		noUser      *ErrUserNotFound
		noResume    *ErrResumeNotFound
		forbidden   *ErrForbidden
		validation  *ErrValidation
		conflict    *db.VersionConflictError
		docInvalid  *schemas.ValidationError
		unsupported *ingestion.UnsupportedFormatError
		empty       *ingestion.EmptyContentError
		tooLarge    *ingestion.TooLargeError
		badReport   *analysis.ReportError
		badResponse *llm.ResponseError
	)

	switch {
	case errors.As(err, &emailExists), errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &noUser), errors.As(err, &noResume):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &docInvalid),
		errors.As(err, &unsupported), errors.As(err, &empty):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &badReport), errors.As(err, &badResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
