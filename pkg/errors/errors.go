package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Client-caused errors
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeParse      ErrorType = "PARSE"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"

	// Store errors
	ErrorTypeConflict ErrorType = "CONFLICT"
	ErrorTypeBackend  ErrorType = "BACKEND"

	// Broker errors
	ErrorTypeNotify ErrorType = "NOTIFY"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Code       string    `json:"code,omitempty"`
	Cause      error     `json:"-"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode adds an error code, typically the AWS error code of the cause
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewParseError creates an error for a payload that is not structured data
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeParse,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError creates an error for a write rejected by a key-absent guard
func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusConflict,
	}
}

// NewBackendError creates a store or transport error
func NewBackendError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeBackend,
		Message:    fmt.Sprintf("backend operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewNotifyError creates a publish failure
func NewNotifyError(target string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotify,
		Message:    fmt.Sprintf("publish to '%s' failed", target),
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return IsType(err, ErrorTypeConflict)
}

// IsBackend checks if an error is a backend error
func IsBackend(err error) bool {
	return IsType(err, ErrorTypeBackend)
}

// IsNotify checks if an error is a notify error
func IsNotify(err error) bool {
	return IsType(err, ErrorTypeNotify)
}

// ErrorCode returns the code attached to an AppError in the chain, empty
// when there is none.
func ErrorCode(err error) string {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ""
}

// HTTPStatus returns the status an error maps to, 500 for anything that is
// not an AppError.
func HTTPStatus(err error) int {
	if appErr := GetAppError(err); appErr != nil && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
