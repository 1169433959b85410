package constvars

var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"oneof":        "must be one of: %s",
	"weekday":      "must be a weekday name",
	"display_time": "must be picked from the time options",
	"min":          "is too small",
	"max":          "is too large",
}
