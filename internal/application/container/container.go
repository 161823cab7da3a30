// Package container provides dependency injection for all singleton services
package container

import (
	"fmt"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/services"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/cleanup"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/persistence/content"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/persistence/database"
	"github.com/AtRiskMedia/tractstack-inspector/pkg/config"
)

// Options selects the backing store and the clipboard used for exports.
type Options struct {
	Database  database.Options
	Clipboard inspector.Clipboard
}

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services
	ComponentService *services.ComponentService
	InspectorService *services.InspectorService
	AuthService      *services.AuthService

	// Infrastructure Dependencies
	DB             *database.DB
	ComponentCache *stores.ComponentStore
	SessionCache   *stores.EditorSessionStore
	CanvasHub      *messaging.CanvasHub
	CleanupWorker  *cleanup.Worker

	// Observability
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
}

// NewLogger builds the channeled logger from pkg/config.
func NewLogger() (*logging.ChanneledLogger, error) {
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = config.LogToFile
	cfg.LogDirectory = config.LogDirectory
	cfg.JSONFormat = config.LogJSON
	cfg.DefaultLevel = logging.ParseLevel(config.LogLevel)
	return logging.NewChanneledLogger(cfg)
}

// NewContainer opens the database, creates the schema and wires every
// singleton service.
func NewContainer(opts Options, logger *logging.ChanneledLogger) (*Container, error) {
	start := time.Now()

	db, err := database.NewConnection(opts.Database, logger)
	if err != nil {
		logger.LogStartupPhase("database", time.Since(start), false)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.NewTableCreator().CreateSchema(db.DB); err != nil {
		db.Close()
		logger.LogStartupPhase("schema", time.Since(start), false)
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	logger.LogStartupPhase("database", time.Since(start), true)

	perfTracker := performance.NewTracker(logger, &performance.TrackerConfig{SlowThreshold: 5 * config.SlowQueryThreshold})
	componentCache := stores.NewComponentStore(logger)
	sessionCache := stores.NewEditorSessionStore(logger)
	hub := messaging.NewCanvasHub(logger)

	componentRepo := content.NewComponentRepository(db.DB, componentCache, logger)
	componentService := services.NewComponentService(componentRepo, hub, logger, perfTracker)
	inspectorService := services.NewInspectorService(componentService, sessionCache, opts.Clipboard, logger, perfTracker)

	worker := cleanup.NewWorker(componentCache, sessionCache, logger, cleanup.NewConfig())
	worker.OnSessionExpired(inspectorService.SessionExpired)

	return &Container{
		ComponentService: componentService,
		InspectorService: inspectorService,
		AuthService:      services.NewAuthService(services.AuthConfigFromEnv(), logger),

		DB:             db,
		ComponentCache: componentCache,
		SessionCache:   sessionCache,
		CanvasHub:      hub,
		CleanupWorker:  worker,

		Logger:      logger,
		PerfTracker: perfTracker,
	}, nil
}

// Close releases the database connection.
func (c *Container) Close() error {
	if err := c.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
