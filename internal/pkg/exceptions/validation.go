package exceptions

import (
	"strings"

	"facultyload-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

// FormatFirstValidationError turns the first validator/v10 failure into a
// client-readable sentence. Subsequent failures surface once the first one is
// fixed, mirroring how the dialog shows one problem at a time.
func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}

	firstErr := validationErrors[0]
	fieldName := strings.ToLower(firstErr.Field())
	customMessage, ok := constvars.CustomValidationErrorMessages[firstErr.Tag()]
	if !ok {
		customMessage = "is invalid"
	}
	if firstErr.Tag() == "oneof" {
		customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(firstErr.Param()), ", "), 1)
	}
	return fieldName + " " + customMessage
}
