package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/services"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/tractstack-inspector/internal/presentation/templates"
	"github.com/gin-gonic/gin"
)

// OpenSessionRequest is the body of POST /api/v1/inspector/sessions
type OpenSessionRequest struct {
	ComponentID string `json:"componentId" form:"componentId" binding:"required"`
}

// SelectTabRequest is the body of PUT /api/v1/inspector/sessions/:sid/tab
type SelectTabRequest struct {
	Tab string `json:"tab" form:"tab" binding:"required"`
}

// EditFieldRequest is the body of POST /api/v1/inspector/sessions/:sid/fields.
// Value is the raw control value; an unchecked checkbox sends nothing.
type EditFieldRequest struct {
	Tab   string `json:"tab" form:"tab" binding:"required"`
	Field string `json:"field" form:"field" binding:"required"`
	Value string `json:"value" form:"value"`
}

// RenameRequest is the body of PUT /api/v1/inspector/sessions/:sid/name
type RenameRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
}

// InspectorHandlers serves the inspector as JSON or htmx fragments
type InspectorHandlers struct {
	inspectorService *services.InspectorService
	renderer         *templates.InspectorRenderer
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewInspectorHandlers creates inspector handlers with injected dependencies
func NewInspectorHandlers(inspectorService *services.InspectorService, renderer *templates.InspectorRenderer, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *InspectorHandlers {
	return &InspectorHandlers{
		inspectorService: inspectorService,
		renderer:         renderer,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

func wantsHTML(c *gin.Context) bool {
	if c.GetHeader("HX-Request") == "true" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

func (h *InspectorHandlers) respondView(c *gin.Context, status int, view *services.InspectorView) {
	if !wantsHTML(c) {
		c.JSON(status, view)
		return
	}
	html, err := h.renderer.RenderInspector(view)
	if err != nil {
		h.logger.LogError(logging.ChannelInspector, "render", err, map[string]any{"sessionId": view.SessionID})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render inspector"})
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(html))
}

// PostOpenSession handles POST /api/v1/inspector/sessions
func (h *InspectorHandlers) PostOpenSession(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	view, err := h.inspectorService.Open(req.ComponentID, c.GetString(editorKey))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondView(c, http.StatusCreated, view)
}

// GetSession handles GET /api/v1/inspector/sessions/:sid
func (h *InspectorHandlers) GetSession(c *gin.Context) {
	view, err := h.inspectorService.View(c.Param("sid"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, view)
}

// PutTab handles PUT /api/v1/inspector/sessions/:sid/tab
func (h *InspectorHandlers) PutTab(c *gin.Context) {
	var req SelectTabRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	view, err := h.inspectorService.SelectTab(c.Param("sid"), inspector.Tab(req.Tab))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, view)
}

// PostField handles POST /api/v1/inspector/sessions/:sid/fields
func (h *InspectorHandlers) PostField(c *gin.Context) {
	start := time.Now()
	sessionID := c.Param("sid")

	var req EditFieldRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.inspectorService.Edit(sessionID, inspector.Tab(req.Tab), req.Field, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.WithContext(logging.ChannelInspector, c.Request.Context()).Debug("Field edited",
		"sessionId", sessionID, "tab", req.Tab, "field", req.Field, "duration", time.Since(start))

	if wantsHTML(c) {
		h.respondView(c, http.StatusOK, result.View)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PutName handles PUT /api/v1/inspector/sessions/:sid/name
func (h *InspectorHandlers) PutName(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	view, err := h.inspectorService.Rename(c.Param("sid"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondView(c, http.StatusOK, view)
}

// GetExport handles GET /api/v1/inspector/sessions/:sid/export
func (h *InspectorHandlers) GetExport(c *gin.Context) {
	marker := h.perfTracker.StartOperation("inspector:export", c.Param("sid"))
	defer marker.Complete()

	result, err := h.inspectorService.Export(c.Param("sid"))
	if err != nil {
		marker.SetError(err)
		respondError(c, err)
		return
	}
	marker.SetSuccess(result.Success)

	if wantsHTML(c) {
		html, err := h.renderer.RenderToast(result.Success, result.Message)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteComponent handles DELETE /api/v1/inspector/sessions/:sid/component
func (h *InspectorHandlers) DeleteComponent(c *gin.Context) {
	if err := h.inspectorService.DeleteComponent(c.Param("sid")); err != nil {
		respondError(c, err)
		return
	}
	if wantsHTML(c) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteSession handles DELETE /api/v1/inspector/sessions/:sid
func (h *InspectorHandlers) DeleteSession(c *gin.Context) {
	if err := h.inspectorService.Close(c.Param("sid")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
