package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts binding/validation failures into a single
// ErrorDetail carrying per-field messages.
func HandleValidationError(err error) *ErrorDetail {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	validationErrors := NewValidationErrors()
	for _, fieldError := range fieldErrors {
		validationErrors.AddError(fieldError.Field(), formatFieldError(fieldError))
	}
	return validationErrors.ToErrorDetail()
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "userrole":
		return e.Field() + " must be one of: student, teacher, parent, school_admin"
	case "agegroup":
		return e.Field() + " must be one of: 6-11, 12-17"
	case "relationshiptype":
		return e.Field() + " must be one of: parent, guardian"
	case "lessontype":
		return e.Field() + " must be one of: video, interactive, quiz, project"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
