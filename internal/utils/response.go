// Package utils provides utility functions and helpers for the application.
// This file implements a standardized API response system that ensures
// consistent response formats across all API endpoints.
//
// The response system includes:
//   - A standard Response structure for all API responses
//   - Convenience functions for common response types
//   - Error-to-response conversion from the AppError taxonomy
//
// This ensures that all API responses follow the same format, making it easier
// for clients to parse and handle responses predictably.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/localewatch/localewatch/internal/constants"
)

// Response represents a standardized API response.
// All API endpoints return responses in this format for consistency.
type Response struct {
	Success bool        `json:"success"`         // Whether the request was successful
	Data    interface{} `json:"data,omitempty"`  // The response data (omitted for error responses)
	Error   *ErrorInfo  `json:"error,omitempty"` // Error information (omitted for successful responses)
}

// ErrorInfo represents error information in the response.
// This provides structured error information to clients.
type ErrorInfo struct {
	Code    string            `json:"code"`              // A machine-readable error code
	Message string            `json:"message"`           // A human-readable error message
	Details map[string]string `json:"details,omitempty"` // Per-field details for sanitize/validate failures
}

// JSON sends a JSON response with the given status code and data.
// This is the primary function for sending successful responses.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}

	SendJSON(w, statusCode, response)
}

// Error sends an error response with the given status code, error code, message
// and optional per-field details.
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	response := Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	SendJSON(w, statusCode, response)
}

// ErrorFromAppError sends an error response based on an AppError.
// This provides a convenient way to convert application errors to API responses.
// Field-tagged detail maps survive the conversion so callers can highlight the
// specific offending inputs.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	errCode := "internal_error"
	switch err.Err {
	case ErrNotFound:
		errCode = "not_found"
	case ErrBadRequest:
		errCode = "bad_request"
	case ErrUnauthorized:
		errCode = "unauthorized"
	case ErrForbidden:
		errCode = "forbidden"
	case ErrValidation:
		errCode = "validation_error"
	case ErrSanitization:
		errCode = "sanitization_error"
	case ErrRateLimited:
		errCode = "rate_limited"
	case ErrDuplicate:
		errCode = "duplicate_resource"
	case ErrExpiredToken:
		errCode = "token_expired"
	case ErrInvalidToken:
		errCode = "token_invalid"
	}

	var details map[string]string
	if len(err.Details) > 0 {
		details = make(map[string]string, len(err.Details))
		for field, msg := range err.Details {
			if s, ok := msg.(string); ok {
				details[field] = s
			}
		}
	} else if err.Field != "" {
		details = map[string]string{
			err.Field: err.Message,
		}
	}

	if err.Err == ErrRateLimited {
		w.Header().Set(constants.HeaderRetryAfter, "900")
	}

	Error(w, err.StatusCode, errCode, err.Message, details)
}

// RespondError sends an error response for an arbitrary error, translating it
// through the AppError taxonomy first.
func RespondError(w http.ResponseWriter, err error) {
	ErrorFromAppError(w, ParseError(err))
}

// SendJSON is a helper function to send JSON data with proper headers.
// This handles JSON marshaling and error handling for all response types.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		if _, err := w.Write([]byte(`{"success":false,"error":{"code":"internal_error","message":"Failed to generate response"}}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	if _, err = w.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Error(w, http.StatusBadRequest, "bad_request", message, details)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	Error(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAccessDenied
	}
	Error(w, http.StatusForbidden, "forbidden", message, nil)
}

// NotFound sends a 404 Not Found error response.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "The requested resource was not found"
	}
	Error(w, http.StatusNotFound, "not_found", message, nil)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(w http.ResponseWriter, err error) {
	if err != nil {
		log.Error().Err(err).Msg("Internal server error")
	}
	Error(w, http.StatusInternalServerError, "internal_error", constants.MsgInternalServerError, nil)
}

// ValidationFailed sends a 400 response carrying one message per offending field.
func ValidationFailed(w http.ResponseWriter, errors map[string]string) {
	Error(w, http.StatusBadRequest, "validation_error", "Validation failed", errors)
}
