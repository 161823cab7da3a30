// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/AtRiskMedia/tractstack-inspector/internal/application/container"
	"github.com/AtRiskMedia/tractstack-inspector/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/tractstack-inspector/internal/presentation/http/middleware"
	"github.com/AtRiskMedia/tractstack-inspector/internal/presentation/templates"
	"github.com/gin-gonic/gin"
)

const inspectorSessionsPath = "/api/v1/inspector/sessions"

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(allowedOrigins))

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	componentHandlers := handlers.NewComponentHandlers(container.ComponentService, container.Logger)
	inspectorHandlers := handlers.NewInspectorHandlers(
		container.InspectorService,
		templates.NewInspectorRenderer(inspectorSessionsPath),
		container.Logger,
		container.PerfTracker,
	)
	realtimeHandlers := handlers.NewRealtimeHandlers(container.CanvasHub, allowedOrigins, container.Logger)
	systemHandlers := handlers.NewSystemHandlers(container)

	r.GET("/health", systemHandlers.GetHealth)

	api := r.Group("/api/v1")
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		// Read-only store access
		api.GET("/components", componentHandlers.GetAllComponents)
		api.GET("/components/:id", componentHandlers.GetComponent)
		api.GET("/pages/:pageId/components", componentHandlers.GetPageComponents)

		// Live canvas updates
		api.GET("/canvas/ws", realtimeHandlers.GetCanvasSocket)

		// Authenticated store writes
		edit := api.Group("/components")
		edit.Use(authHandlers.AuthMiddleware())
		{
			edit.POST("", componentHandlers.PostComponent)
			edit.PATCH("/:id", componentHandlers.PatchComponent)
			edit.DELETE("/:id", componentHandlers.DeleteComponent)
		}

		// Inspector sessions
		sessions := api.Group("/inspector/sessions")
		sessions.Use(authHandlers.AuthMiddleware())
		{
			sessions.POST("", inspectorHandlers.PostOpenSession)
			sessions.GET("/:sid", inspectorHandlers.GetSession)
			sessions.PUT("/:sid/tab", inspectorHandlers.PutTab)
			sessions.POST("/:sid/fields", inspectorHandlers.PostField)
			sessions.PUT("/:sid/name", inspectorHandlers.PutName)
			sessions.GET("/:sid/export", inspectorHandlers.GetExport)
			sessions.DELETE("/:sid/component", inspectorHandlers.DeleteComponent)
			sessions.DELETE("/:sid", inspectorHandlers.DeleteSession)
		}

		// Runtime log levels
		logs := api.Group("/logs")
		logs.Use(authHandlers.AuthMiddleware())
		{
			logs.GET("/levels", systemHandlers.GetLogLevels)
			logs.POST("/levels", systemHandlers.PostLogLevel)
		}
	}

	return r
}
