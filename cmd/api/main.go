package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"rental-insights/internal/app"
	"rental-insights/internal/config"
	"rental-insights/internal/handlers"
	"rental-insights/internal/logging"
	"rental-insights/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: %v", err)
	}

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}

	logger, err := logging.New(appConfig.Logging, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("loaded configuration", "path", configPath)

	if err := run(appConfig, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM or a server failure. The scheduler and
// the HTTP server are both stopped before it returns.
func run(appConfig *config.Config, logger *slog.Logger) error {
	// Load the dataset once; queries never touch the source again
	svc, err := app.LoadService(appConfig, logger)
	if err != nil {
		return err
	}

	appScheduler := scheduler.NewScheduler(svc, appConfig.Report, svc.Location(), logger)
	if err := appScheduler.Start(); err != nil {
		return err
	}
	defer appScheduler.Stop()

	if getEnv("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:    ":" + appConfig.Server.Port,
		Handler: handlers.NewRouter(svc, appConfig, logger),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", appConfig.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-serverErrors:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
