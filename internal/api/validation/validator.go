package validation

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// FormatValidationError flattens validator errors; it returns nil for any
// other kind of error.
func FormatValidationError(err error) []ValidationError {
	var errs []ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
			})
		}
	}
	return errs
}

// IsValidationError reports whether err came from struct validation
// rather than from decoding the body.
func IsValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// IsShapeError reports whether err came from well-formed JSON that does not
// fit the target, such as a number where a string is expected or an array
// instead of an object. Syntax errors and truncated bodies are not shape errors.
func IsShapeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

// MissingFields lists the required fields that were absent or empty
func MissingFields(err error) []string {
	var fields []string
	for _, e := range FormatValidationError(err) {
		if e.Tag == "required" {
			fields = append(fields, e.Field)
		}
	}
	return fields
}
