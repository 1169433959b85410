package constvars

// Client-facing messages. These are the only strings that leave the service
// on an error path; dev messages stay in logs.
const (
	ErrClientCannotProcessRequest          = "We cannot process your request, please try again"
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please contact our team"
	ErrClientDialogSessionNotFound         = "The scheduling dialog has expired, please reopen it"
	ErrClientInvalidTimeFormat             = "Time must be picked from the provided options"
	ErrClientInvalidDay                    = "Day must be one of the weekday options"
	ErrClientStartEndRequired              = "Start time and end time are required"
	ErrClientEndBeforeStart                = "End time must be later than start time"
	ErrClientUnknownFaculty                = "Professor must match one of the listed faculty members"
	ErrClientUnknownRoom                   = "Room must match one of the listed rooms"
	ErrClientAssignBlockedByConflict       = "Please resolve the scheduling conflict before assigning"
	ErrClientValidationUnavailable         = "validation error"
	ErrClientPreferenceOutOfRange          = "The selected suggestion is no longer available"
)

// Dev messages.
const (
	ErrDevValidationFailed        = "Request payload validation failed"
	ErrDevCannotParseJSON         = "Failed to parse JSON payload"
	ErrDevCannotParseTime         = "Failed to parse time value"
	ErrDevBuildRequest            = "Failed to build HTTP request to registry"
	ErrDevSendRequest             = "Failed to send HTTP request to registry"
	ErrDevDecodeResponse          = "Failed to decode registry response for %s"
	ErrDevRegistryOperationFailed = "Registry rejected %s"
	ErrDevRegistryTimeout         = "Registry call %s exceeded the configured timeout"
	ErrDevRedisSet                = "Failed to set data to redis"
	ErrDevRedisGetNoData          = "Failed to get data from redis with key: %s"
	ErrDevRedisDelete             = "Failed to delete data from redis"
	ErrDevSessionNotFound         = "Dialog session %s not found or expired"
	ErrDevAssignWhileConflicted   = "Assign refused locally: conflict still flagged"
	ErrDevAssignMissingFields     = "Assign refused locally: required fields missing"
	ErrDevPreferenceIndex         = "Preference index %d out of range (have %d)"
)
