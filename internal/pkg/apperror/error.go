// Package apperror provides structured errors shared by the soft-delete services
// and the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInternal      = "INTERNAL_ERROR"
	CodeDatabase      = "DATABASE_ERROR"
	CodeCommitFailure = "COMMIT_FAILURE"

	CodeValidation    = "VALIDATION_ERROR"
	CodeConfiguration = "CONFIGURATION_ERROR"

	CodeUnauthorized = "UNAUTHORIZED"

	CodeNotFound = "NOT_FOUND"

	CodeCascadeConflict = "CASCADE_CONFLICT"
)

// NotFoundMessage is reported when the requested entry does not exist.
const NotFoundMessage = "Could not find the entry you ask for."

// AppError is the standard error type of the module.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (entity type, key, ...)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewNotFound creates a not found error (404)
func NewNotFound(entityType string, key any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    NotFoundMessage,
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity_type": entityType, "key": key},
	}
}

// NewConfiguration reports inconsistent graph metadata. It is a setup defect,
// never a runtime condition.
func NewConfiguration(format string, args ...any) *AppError {
	return &AppError{
		Code:       CodeConfiguration,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewCommitFailure wraps a transactional failure reported by the database.
func NewCommitFailure(err error) *AppError {
	return &AppError{
		Code:       CodeCommitFailure,
		Message:    fmt.Sprintf("Failed to save the soft delete changes: %v", err),
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

// NewDatabase wraps a read failure of the persistence layer.
func NewDatabase(err error) *AppError {
	return &AppError{
		Code:       CodeDatabase,
		Message:    fmt.Sprintf("Database error: %v", err),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewCascadeConflict reports a reset refused because another, still soft
// deleted, entry is responsible for the state of this one (409).
func NewCascadeConflict(format string, args ...any) *AppError {
	return &AppError{
		Code:       CodeCascadeConflict,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: http.StatusConflict,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

func hasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsConfiguration checks if error is CodeConfiguration
func IsConfiguration(err error) bool {
	return hasCode(err, CodeConfiguration)
}

// IsCommitFailure checks if error is CodeCommitFailure
func IsCommitFailure(err error) bool {
	return hasCode(err, CodeCommitFailure)
}

// IsCascadeConflict checks if error is CodeCascadeConflict
func IsCascadeConflict(err error) bool {
	return hasCode(err, CodeCascadeConflict)
}
