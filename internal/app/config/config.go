package config

import (
	"time"

	"facultyload-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUEST", 50),
			ShutdownTimeout: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
		},
		Registry: Registry{
			BaseUrl: utils.GetEnvString("REGISTRY_BASE_URL", "http://localhost:9090/api"),
			Timeout: utils.GetEnvDuration("REGISTRY_TIMEOUT", 10*time.Second),
		},
		Scheduling: Scheduling{
			DebounceWindow: utils.GetEnvDuration("SCHEDULING_DEBOUNCE_WINDOW", 150*time.Millisecond),
			SessionTTL:     utils.GetEnvDuration("SCHEDULING_SESSION_TTL", 30*time.Minute),
			OptionCacheTTL: utils.GetEnvDuration("SCHEDULING_OPTION_CACHE_TTL", 5*time.Minute),
		},
	}
}
