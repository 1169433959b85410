package exceptions

import (
	"fmt"

	"facultyload-service/internal/pkg/constvars"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseTime = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidTimeFormat, constvars.ErrDevCannotParseTime)
	}

	// Registry transport
	ErrBuildRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevBuildRequest)
	}
	ErrSendRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientValidationUnavailable, constvars.ErrDevSendRequest)
	}
	ErrDecodeResponse = func(err error, operation string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientValidationUnavailable, fmt.Sprintf(constvars.ErrDevDecodeResponse, operation))
	}
	ErrRegistryOperation = func(err error, operation string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientValidationUnavailable, fmt.Sprintf(constvars.ErrDevRegistryOperationFailed, operation))
	}

	// Dialog session
	ErrDialogSessionNotFound = func(sessionID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.ErrClientDialogSessionNotFound, fmt.Sprintf(constvars.ErrDevSessionNotFound, sessionID))
	}
	ErrAssignBlockedByConflict = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientAssignBlockedByConflict, constvars.ErrDevAssignWhileConflicted)
	}
	ErrAssignMissingFields = func(clientMessage string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, clientMessage, constvars.ErrDevAssignMissingFields)
	}
	ErrPreferenceOutOfRange = func(index, have int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientPreferenceOutOfRange, fmt.Sprintf(constvars.ErrDevPreferenceIndex, index, have))
	}

	// Redis
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSet)
	}
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey))
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotParseJSON)
	}
)
