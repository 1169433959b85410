package constvars

type contextKey string

const (
	ContextRequestIDKey         contextKey = "request_id"
	ContextIsClientRequestIDKey contextKey = "is_client_request_id"
)

const (
	LoggingRequestIDKey  = "request_id"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
	LoggingSessionIDKey  = "session_id"
	LoggingScheduleIDKey = "schedule_id"
)

const (
	ResponseUnknown = "unknown"
)

// Redis key prefixes owned by this service.
const (
	RedisKeyDialogSession   = "scheduling:dialog:%s"
	RedisKeyFacultyOptions  = "scheduling:options:faculty"
	RedisKeyRoomOptions     = "scheduling:options:rooms"
	RedisKeySuggestedGrid   = "scheduling:options:suggestions:%d:%d:%d"
	RedisKeyOptionCacheLock = "scheduling:options:refresh-lock"
)
