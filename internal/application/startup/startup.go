package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/container"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/persistence/database"
	"github.com/AtRiskMedia/tractstack-inspector/internal/presentation/http/middleware"
	"github.com/AtRiskMedia/tractstack-inspector/internal/presentation/http/routes"
	"github.com/AtRiskMedia/tractstack-inspector/internal/presentation/http/server"
	"github.com/AtRiskMedia/tractstack-inspector/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize boots the inspector service and blocks until SIGINT or SIGTERM.
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `
  tractstack inspector
` + "\033[97m" + `  made by At Risk Media
` + "\033[0m")

	log.Println("Initializing logger...")
	logger, err := container.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	logger.Startup().Info("Initializing dependency injection container...")
	appContainer, err := container.NewContainer(container.Options{Database: database.OptionsFromConfig()}, logger)
	if err != nil {
		return err
	}
	logger.Startup().Info("Container initialization complete", "database", appContainer.DB.Describe())

	logger.Startup().Info("Starting canvas hub...")
	go appContainer.CanvasHub.Run(ctx)

	logger.Startup().Info("Starting background cleanup worker...")
	go appContainer.CleanupWorker.Start(ctx)

	if !appContainer.AuthService.Enabled() {
		logger.Startup().Warn("EDITOR_PASSWORD is not set; editing routes will reject every request")
	}

	startServerTime := time.Now()
	router := routes.SetupRoutes(appContainer, middleware.ParseOrigins(config.CORSOrigins))
	httpServer := server.New(config.Port, router, logger)
	logger.Startup().Info("HTTP server initialized", "port", config.Port, "duration", time.Since(startServerTime))

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
			serverErr <- err
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	select {
	case <-gracefulShutdown:
		logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")
	case err := <-serverErr:
		logger.Shutdown().Error("Shutting down after server failure", "error", err.Error())
	}

	shutdownStart := time.Now()
	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Closing database...")
	if err := appContainer.Close(); err != nil {
		logger.Shutdown().Error("Error closing database", "error", err.Error())
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
