package handlers

import (
	"net/http"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/services"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// CreateComponentRequest is the body of POST /api/v1/components
type CreateComponentRequest struct {
	ID               string                                        `json:"id"`
	Type             component.Type                                `json:"type" binding:"required"`
	Name             string                                        `json:"name"`
	PageID           string                                        `json:"pageId"`
	Props            component.Attributes                          `json:"props"`
	Styles           component.Attributes                          `json:"styles"`
	Responsive       map[component.Breakpoint]component.Attributes `json:"responsive"`
	CSSClasses       string                                        `json:"cssClasses"`
	CustomCSS        string                                        `json:"customCSS"`
	HTMLID           string                                        `json:"htmlId"`
	CustomAttributes string                                        `json:"customAttributes"`
}

// ComponentHandlers contains the page-builder store endpoints
type ComponentHandlers struct {
	componentService *services.ComponentService
	logger           *logging.ChanneledLogger
}

// NewComponentHandlers creates component handlers with injected dependencies
func NewComponentHandlers(componentService *services.ComponentService, logger *logging.ChanneledLogger) *ComponentHandlers {
	return &ComponentHandlers{
		componentService: componentService,
		logger:           logger,
	}
}

// GetAllComponents handles GET /api/v1/components
func (h *ComponentHandlers) GetAllComponents(c *gin.Context) {
	comps, err := h.componentService.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"components": comps, "count": len(comps)})
}

// GetPageComponents handles GET /api/v1/pages/:pageId/components
func (h *ComponentHandlers) GetPageComponents(c *gin.Context) {
	pageID := c.Param("pageId")
	comps, err := h.componentService.List(pageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pageId": pageID, "components": comps, "count": len(comps)})
}

// GetComponent handles GET /api/v1/components/:id
func (h *ComponentHandlers) GetComponent(c *gin.Context) {
	comp, err := h.componentService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comp)
}

// PostComponent handles POST /api/v1/components
func (h *ComponentHandlers) PostComponent(c *gin.Context) {
	start := time.Now()
	log := h.logger.WithContext(logging.ChannelContent, c.Request.Context())

	var req CreateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	comp, err := h.componentService.Create(&component.Component{
		ID:               req.ID,
		Type:             req.Type,
		Name:             req.Name,
		PageID:           req.PageID,
		Props:            req.Props,
		Styles:           req.Styles,
		Responsive:       req.Responsive,
		CSSClasses:       req.CSSClasses,
		CustomCSS:        req.CustomCSS,
		HTMLID:           req.HTMLID,
		CustomAttributes: req.CustomAttributes,
	})
	if err != nil {
		log.Warn("Create component failed", "error", err.Error())
		respondError(c, err)
		return
	}

	log.Info("Create component request completed", "componentId", comp.ID, "duration", time.Since(start))
	c.JSON(http.StatusCreated, comp)
}

// PatchComponent handles PATCH /api/v1/components/:id with a raw patch body
func (h *ComponentHandlers) PatchComponent(c *gin.Context) {
	var patch component.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch body", "details": err.Error()})
		return
	}

	comp, err := h.componentService.ApplyPatch(c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comp)
}

// DeleteComponent handles DELETE /api/v1/components/:id
func (h *ComponentHandlers) DeleteComponent(c *gin.Context) {
	id := c.Param("id")
	if err := h.componentService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
