package config

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type (
	Bootstrap struct {
		Router         *chi.Mux
		Redis          *redis.Client
		Logger         *zap.Logger
		DriverConfig   *DriverConfig
		InternalConfig *InternalConfig
	}

	InternalConfig struct {
		App        App
		Registry   Registry
		Scheduling Scheduling
	}

	DriverConfig struct {
		Redis  Redis
		Logger Logger
	}

	App struct {
		Env             string
		Port            string
		Version         string
		EndpointPrefix  string
		MaxRequests     int
		ShutdownTimeout int
	}

	// Registry points at the authoritative faculty-load backend.
	Registry struct {
		BaseUrl string
		Timeout time.Duration
	}

	// Scheduling tunes the dialog workflow.
	Scheduling struct {
		DebounceWindow time.Duration
		SessionTTL     time.Duration
		OptionCacheTTL time.Duration
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
