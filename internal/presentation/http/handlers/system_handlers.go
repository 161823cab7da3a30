package handlers

import (
	"net/http"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/container"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// SystemHandlers serves health and runtime logging controls
type SystemHandlers struct {
	container *container.Container
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(container *container.Container) *SystemHandlers {
	return &SystemHandlers{container: container}
}

// GetHealth handles GET /health
func (h *SystemHandlers) GetHealth(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK
	dbStatus := "connected"
	if err := h.container.DB.PingContext(c.Request.Context()); err != nil {
		status, dbStatus = "degraded", err.Error()
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":         status,
		"database":       dbStatus,
		"driver":         h.container.DB.Driver,
		"cache":          h.container.ComponentCache.Stats(),
		"editorSessions": h.container.InspectorService.OpenSessions(),
		"canvasClients":  h.container.CanvasHub.ClientCount(),
		"uptime":         h.container.PerfTracker.Uptime().Round(time.Second).String(),
		"operations":     h.container.PerfTracker.Stats(),
	})
}

// GetLogLevels handles GET /api/v1/logs/levels
func (h *SystemHandlers) GetLogLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": h.container.Logger.GetChannelLevels()})
}

// PostLogLevel handles POST /api/v1/logs/levels
func (h *SystemHandlers) PostLogLevel(c *gin.Context) {
	var req struct {
		Channel string `json:"channel" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.container.Logger.SetChannelLevel(logging.Channel(req.Channel), logging.ParseLevel(req.Level)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "levels": h.container.Logger.GetChannelLevels()})
}
