package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	err := &AppError{Message: "something broke"}
	assert.Equal(t, "something broke", err.Error())

	err = &AppError{Field: "surveillance.interval", Message: "out of range"}
	assert.Equal(t, "surveillance.interval: out of range", err.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewForbiddenError("")
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantErr    error
		wantStatus int
	}{
		{"not found", NewNotFoundError("Setting", "surveillance"), ErrNotFound, http.StatusNotFound},
		{"unauthorized", NewUnauthorizedError(""), ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError(""), ErrForbidden, http.StatusForbidden},
		{"bad request", NewBadRequestError("nope"), ErrBadRequest, http.StatusBadRequest},
		{"validation", NewValidationError("field", "msg"), ErrValidation, http.StatusBadRequest},
		{"rate limit", NewRateLimitError(""), ErrRateLimited, http.StatusTooManyRequests},
		{"duplicate", NewDuplicateError("Assignment", "locale", "de_de"), ErrDuplicate, http.StatusConflict},
		{"expired token", NewExpiredTokenError(), ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", NewInvalidTokenError(), ErrInvalidToken, http.StatusUnauthorized},
		{"internal", NewInternalServerError(errors.New("boom")), ErrInternalServer, http.StatusInternalServerError},
		{"corrupt", NewCorruptError("option localewatch_settings", errors.New("invalid character 'x'")), ErrCorrupt, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.wantErr))
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestNewSanitizationError(t *testing.T) {
	err := NewSanitizationError(map[string]string{
		"surveillance.interval": "must be between 3 and 300",
	})

	assert.True(t, errors.Is(err, ErrSanitization))
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "must be between 3 and 300", err.Details["surveillance.interval"])
}

func TestNewValidationErrorWithDetails(t *testing.T) {
	err := NewValidationErrorWithDetails("Validation failed", map[string]string{
		"global_webhook.webhook_url": "required when enabled",
	})

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Len(t, err.Details, 1)
}

func TestParseError(t *testing.T) {
	t.Run("passes AppError through", func(t *testing.T) {
		original := NewNotFoundError("Option", "localewatch_settings")
		parsed := ParseError(original)
		assert.Same(t, original, parsed)
	})

	t.Run("passes wrapped AppError through", func(t *testing.T) {
		original := NewForbiddenError("")
		parsed := ParseError(fmt.Errorf("pipeline: %w", original))
		assert.Same(t, original, parsed)
	})

	t.Run("maps sentinel errors", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, ParseError(ErrNotFound).StatusCode)
		assert.Equal(t, http.StatusUnauthorized, ParseError(ErrUnauthorized).StatusCode)
		assert.Equal(t, http.StatusForbidden, ParseError(ErrForbidden).StatusCode)
		assert.Equal(t, http.StatusTooManyRequests, ParseError(ErrRateLimited).StatusCode)
		assert.Equal(t, http.StatusBadRequest, ParseError(ErrValidation).StatusCode)
		assert.Equal(t, http.StatusConflict, ParseError(ErrDuplicate).StatusCode)
		assert.Equal(t, http.StatusUnauthorized, ParseError(ErrExpiredToken).StatusCode)
	})

	t.Run("handles pq unique violation", func(t *testing.T) {
		pqErr := &pq.Error{Code: "23505"}
		parsed := ParseError(pqErr)
		require.NotNil(t, parsed)
		assert.True(t, errors.Is(parsed, ErrDuplicate))
		assert.Equal(t, http.StatusConflict, parsed.StatusCode)
	})

	t.Run("handles pq not null violation", func(t *testing.T) {
		pqErr := &pq.Error{Code: "23502", Column: "locale"}
		parsed := ParseError(pqErr)
		assert.True(t, errors.Is(parsed, ErrValidation))
		assert.Equal(t, "locale", parsed.Field)
	})

	t.Run("recognizes database error text", func(t *testing.T) {
		parsed := ParseError(errors.New("Error 1062: Duplicate key entry"))
		assert.Equal(t, http.StatusConflict, parsed.StatusCode)

		parsed = ParseError(errors.New("sql: no rows in result set"))
		assert.Equal(t, http.StatusNotFound, parsed.StatusCode)
	})

	t.Run("defaults to internal error", func(t *testing.T) {
		parsed := ParseError(errors.New("something exotic"))
		assert.Equal(t, http.StatusInternalServerError, parsed.StatusCode)
		assert.Equal(t, "something exotic", parsed.DevInfo)
	})
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFoundError(NewNotFoundError("x", 1)))
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.False(t, IsNotFoundError(NewForbiddenError("")))

	assert.True(t, IsValidationError(NewValidationError("f", "m")))
	assert.False(t, IsValidationError(NewSanitizationError(nil)))

	assert.True(t, IsSanitizationError(NewSanitizationError(nil)))
	assert.False(t, IsSanitizationError(NewValidationError("f", "m")))

	assert.True(t, IsRateLimitError(NewRateLimitError("")))
	assert.False(t, IsRateLimitError(ErrForbidden))

	assert.True(t, IsCorruptError(NewCorruptError("option", errors.New("bad json"))))
	assert.True(t, IsCorruptError(ErrCorrupt))
	assert.False(t, IsCorruptError(NewNotFoundError("option", "x")))

	assert.True(t, IsPermissionError(NewForbiddenError("")))
	assert.True(t, IsPermissionError(NewUnauthorizedError("")))
	assert.False(t, IsPermissionError(NewNotFoundError("x", 1)))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusCode(NewForbiddenError("")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
}
