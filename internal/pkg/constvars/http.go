package constvars

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPatch  = "PATCH"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

const (
	MIMEApplicationJSON = "application/json"
	MIMETextPlain       = "text/plain"
)

const (
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
	HeaderXRequestID  = "X-Request-ID"
)

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusGone                = 410
	StatusUnprocessableEntity = 422
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusGatewayTimeout      = 504
)
