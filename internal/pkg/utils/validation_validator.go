package utils

import (
	"facultyload-service/internal/app/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("weekday", validateWeekday)
	validate.RegisterValidation("display_time", validateDisplayTime)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateWeekday(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := models.ParseWeekday(value)
	return err == nil
}

// validateDisplayTime accepts only values from the fixed 30-minute picker
// grid; a well-formed time outside the grid is still rejected.
func validateDisplayTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, option := range models.TimeOptions() {
		if option == value {
			return true
		}
	}
	return false
}
