package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"facultyload-service/internal/app/config"
	"facultyload-service/internal/app/delivery/http/controllers"
	"facultyload-service/internal/app/delivery/http/middlewares"
	"facultyload-service/internal/app/delivery/http/routers"
	"facultyload-service/internal/app/drivers/database"
	"facultyload-service/internal/app/drivers/logger"
	"facultyload-service/internal/app/services/core/scheduling"
	"facultyload-service/internal/app/services/registry"
	redisrepo "facultyload-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	redisClient := database.NewRedisClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapTheApp(config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		zapLogger.Info("facultyload-service listening", zap.String("addr", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap) {
	// Redis
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Registry clients
	registryClient := registry.NewScheduleRegistryClient(
		bootstrap.InternalConfig.Registry.BaseUrl,
		bootstrap.InternalConfig.Registry.Timeout,
	)
	referenceDataClient := registry.NewReferenceDataClient(
		bootstrap.InternalConfig.Registry.BaseUrl,
		bootstrap.InternalConfig.Registry.Timeout,
		redisRepository,
		bootstrap.InternalConfig.Scheduling.OptionCacheTTL,
	)

	// Scheduling
	schedulingUsecase := scheduling.NewSchedulingUsecase(
		registryClient,
		referenceDataClient,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	schedulingController := controllers.NewSchedulingController(schedulingUsecase, bootstrap.Logger)
	optionsController := controllers.NewOptionsController(referenceDataClient, bootstrap.Logger)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, schedulingController, optionsController)
}
