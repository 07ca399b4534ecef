package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/localewatch/localewatch/internal/constants"
)

// validate is the shared validator instance, created on first use.
var validate *validator.Validate

// InitValidator builds the shared validator. Validation errors report the
// json tag name of the offending field, not the Go field name, so handler
// responses line up with the request body the client actually sent.
func InitValidator() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	log.Info().Msg("Validator initialized")
}

// GetValidator returns the shared validator, initializing it if needed.
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// DecodeJSON decodes a JSON request body into v. The body is capped at
// MaxRequestBodySize, trailing data after the first value is rejected, and
// decode failures come back as taxonomy errors with messages a client can
// act on.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, constants.MaxRequestBodySize)

	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case err.Error() == "http: request body too large":
			return NewBadRequestError(constants.MsgRequestBodyTooLarge)

		case err == io.EOF:
			return NewBadRequestError(constants.MsgEmptyRequestBody)

		case err == io.ErrUnexpectedEOF:
			return NewBadRequestError(constants.MsgMalformedJSON)

		case errors.As(err, &syntaxError):
			return NewBadRequestError(fmt.Sprintf("Request body contains malformed JSON (at position %d)", syntaxError.Offset))

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return NewValidationError(unmarshalTypeError.Field, fmt.Sprintf("Must be a %s", unmarshalTypeError.Type.String()))
			}
			return NewBadRequestError(fmt.Sprintf("Request body contains incorrect JSON type (at position %d)", unmarshalTypeError.Offset))

		case errors.As(err, &invalidUnmarshalError):
			return NewInternalServerError(err)

		default:
			return NewBadRequestError(fmt.Sprintf("Error decoding JSON: %s", err.Error()))
		}
	}

	if dec.More() {
		return NewBadRequestError("Request body must only contain a single JSON object")
	}

	return nil
}

// ValidateStruct runs tag validation over v and flattens any failures into
// the AppError taxonomy: a single offender becomes a field-tagged error, a
// set of offenders becomes one error with a per-field details map.
func ValidateStruct(v interface{}) error {
	err := GetValidator().Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewBadRequestError(err.Error())
	}

	if len(validationErrors) == 1 {
		e := validationErrors[0]
		return NewValidationError(e.Field(), friendlyMessage(e))
	}

	details := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		details[e.Field()] = friendlyMessage(e)
	}

	return NewValidationErrorWithDetails("Multiple validation errors", details)
}

// DecodeAndValidate decodes a JSON request body and validates the result.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

// friendlyMessage turns a validator failure into a message fit for a client.
func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long", e.Param())
		}
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "max":
		if e.Type().Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", e.Param())
		}
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "oneof":
		allowedValues := strings.Replace(e.Param(), " ", ", ", -1)
		return fmt.Sprintf("Must be one of: %s", allowedValues)
	case "url":
		return "Must be a valid URL"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", e.Param())
	default:
		return fmt.Sprintf("Failed validation on the '%s' tag", e.Tag())
	}
}
