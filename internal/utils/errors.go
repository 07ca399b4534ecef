package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"
)

// Sentinel errors. AppError wraps one of these; errors.Is against a sentinel
// classifies an error regardless of how it was constructed.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation error")
	ErrSanitization   = errors.New("sanitization error")
	ErrRateLimited    = errors.New("rate limited")
	ErrDuplicate      = errors.New("duplicate resource")
	ErrExpiredToken   = errors.New("expired token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrCorrupt        = errors.New("corrupt resource")
)

// AppError carries a categorized error with enough context to render an API
// response: a status code, a client-safe message, and optionally the field
// (or a map of fields) that caused it. DevInfo is for logs, never for
// responses.
type AppError struct {
	Err        error
	StatusCode int
	Message    string
	DevInfo    string
	Field      string
	Details    map[string]any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap exposes the wrapped sentinel to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with an explicit sentinel, status, and message.
func New(err error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// detailsMap widens a per-field message map for storage on an AppError.
func detailsMap(details map[string]string) map[string]any {
	m := make(map[string]any, len(details))
	for k, v := range details {
		m[k] = v
	}
	return m
}

// NewValidationError creates a validation error tied to a single field.
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

// NewValidationErrorWithDetails creates a validation error carrying one
// message per offending field, suitable for inline form display.
func NewValidationErrorWithDetails(message string, details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Details:    detailsMap(details),
	}
}

// NewSanitizationError aggregates per-field normalization failures. It mirrors
// NewValidationErrorWithDetails but wraps ErrSanitization so callers can tell
// which pipeline stage rejected the input.
func NewSanitizationError(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrSanitization,
		StatusCode: http.StatusBadRequest,
		Message:    "One or more fields could not be processed",
		Details:    detailsMap(details),
	}
}

// NewBadRequestError creates a bad request error.
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewNotFoundError creates a not found error for a resource and identifier.
func NewNotFoundError(resourceType string, identifier interface{}) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier),
	}
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return &AppError{
		Err:        ErrUnauthorized,
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

// NewForbiddenError creates a forbidden error. The message is deliberately
// generic; permission denials never explain why a request was refused.
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "You don't have permission to perform this action"
	}
	return &AppError{
		Err:        ErrForbidden,
		StatusCode: http.StatusForbidden,
		Message:    message,
	}
}

// NewRateLimitError creates a rate limit error with a "try again later"
// semantic. Like permission errors, the message carries no detail beyond the
// denial itself.
func NewRateLimitError(message string) *AppError {
	if message == "" {
		message = "Too many requests, try again later"
	}
	return &AppError{
		Err:        ErrRateLimited,
		StatusCode: http.StatusTooManyRequests,
		Message:    message,
	}
}

// NewInternalServerError creates an internal server error, keeping the
// underlying cause in DevInfo.
func NewInternalServerError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    "An internal server error occurred",
		DevInfo:    devInfo,
	}
}

// NewDuplicateError creates a duplicate resource error.
func NewDuplicateError(resourceType, field string, value interface{}) *AppError {
	return &AppError{
		Err:        ErrDuplicate,
		StatusCode: http.StatusConflict,
		Message:    fmt.Sprintf("%s with %s '%v' already exists", resourceType, field, value),
		Field:      field,
	}
}

// NewExpiredTokenError creates an expired token error.
func NewExpiredTokenError() *AppError {
	return &AppError{
		Err:        ErrExpiredToken,
		StatusCode: http.StatusUnauthorized,
		Message:    "Token has expired",
	}
}

// NewCorruptError creates an error for stored data that can no longer be
// decoded. Callers with a safe fallback catch it via IsCorruptError and
// degrade instead of failing the read.
func NewCorruptError(resourceType string, cause error) *AppError {
	devInfo := ""
	if cause != nil {
		devInfo = cause.Error()
	}
	return &AppError{
		Err:        ErrCorrupt,
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("Stored %s could not be decoded", resourceType),
		DevInfo:    devInfo,
	}
}

// NewInvalidTokenError creates an invalid token error.
func NewInvalidTokenError() *AppError {
	return &AppError{
		Err:        ErrInvalidToken,
		StatusCode: http.StatusUnauthorized,
		Message:    "Invalid token",
	}
}

// ParseError converts an arbitrary error into an AppError. Existing AppErrors
// pass through, sentinels map to their standard constructors, and database
// driver errors are recognized both by typed SQLSTATE (lib/pq) and by the
// textual patterns the MySQL driver produces. Anything unrecognized becomes
// an internal server error.
func ParseError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError("Resource", "")
	case errors.Is(err, ErrUnauthorized):
		return NewUnauthorizedError("")
	case errors.Is(err, ErrForbidden):
		return NewForbiddenError("")
	case errors.Is(err, ErrRateLimited):
		return NewRateLimitError("")
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrValidation), errors.Is(err, ErrSanitization):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrDuplicate):
		return NewDuplicateError("Resource", "", "")
	case errors.Is(err, ErrExpiredToken):
		return NewExpiredTokenError()
	case errors.Is(err, ErrInvalidToken):
		return NewInvalidTokenError()
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return &AppError{
				Err:        ErrDuplicate,
				StatusCode: http.StatusConflict,
				Message:    "A resource with the same unique identifier already exists",
				DevInfo:    pqErr.Error(),
			}
		case "23502": // not_null_violation
			field := pqErr.Column
			return &AppError{
				Err:        ErrValidation,
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("The %s field cannot be empty", field),
				DevInfo:    pqErr.Error(),
				Field:      field,
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint"):
		return &AppError{
			Err:        ErrDuplicate,
			StatusCode: http.StatusConflict,
			Message:    "A resource with the same unique identifier already exists",
			DevInfo:    err.Error(),
		}
	case strings.Contains(errMsg, "not found") || strings.Contains(errMsg, "no rows"):
		return &AppError{
			Err:        ErrNotFound,
			StatusCode: http.StatusNotFound,
			Message:    "The requested resource could not be found",
			DevInfo:    err.Error(),
		}
	}

	return NewInternalServerError(err)
}

// IsNotFoundError reports whether err represents a missing resource.
func IsNotFoundError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err came from cross-field validation.
func IsValidationError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrValidation)
	}
	return errors.Is(err, ErrValidation)
}

// IsSanitizationError reports whether err came from per-field normalization.
func IsSanitizationError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrSanitization)
	}
	return errors.Is(err, ErrSanitization)
}

// IsCorruptError reports whether err marks stored data as undecodable.
func IsCorruptError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrCorrupt)
	}
	return errors.Is(err, ErrCorrupt)
}

// IsRateLimitError reports whether err is a throttling denial.
func IsRateLimitError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrRateLimited)
	}
	return errors.Is(err, ErrRateLimited)
}

// IsPermissionError reports whether err is a permission or authentication
// denial.
func IsPermissionError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrForbidden) || errors.Is(appErr.Err, ErrUnauthorized)
	}
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrUnauthorized)
}

// StatusCode returns the HTTP status code for an error, defaulting to 500 for
// errors outside the taxonomy.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
