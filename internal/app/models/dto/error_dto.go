package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the single-error payload: {"error": "..."}
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable message: {"message": "..."}
type MessageResponse struct {
	Message string `json:"message"`
}

// FieldError describes one violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrorResponse is the 422 payload listing every violated
// constraint: {"errors": [...]}
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// NewErrorResponse creates a single-error payload
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewValidationErrorResponse creates a 422 payload from field errors
func NewValidationErrorResponse(errs []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse{Errors: errs}
}

// FieldErrorsFromBinding converts a request binding failure into field
// errors. Both validator tag violations and JSON type mismatches end up as
// per-field entries; anything else becomes a single generic entry.
func FieldErrorsFromBinding(err error) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: tagMessage(fe),
				Value:   fmt.Sprintf("%v", fe.Value()),
			})
		}
		return out
	}

	var jerr *json.UnmarshalTypeError
	if errors.As(err, &jerr) {
		return []FieldError{{
			Field:   jerr.Field,
			Message: fmt.Sprintf("must be of type %s", jerr.Type.String()),
		}}
	}

	return []FieldError{{Message: "invalid request body"}}
}

// tagMessage renders a validator tag violation as a human-readable message
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "examdate":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
