// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/services"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/security"
	"github.com/AtRiskMedia/tractstack-inspector/pkg/config"
	"github.com/gin-gonic/gin"
)

const (
	authCookie = "editor_auth"
	editorKey  = "editor"
)

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// tokenFromRequest returns the bearer token, falling back to the auth cookie.
func tokenFromRequest(c *gin.Context) (token, method string) {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:], "bearer"
	}
	if cookie, err := c.Cookie(authCookie); err == nil && cookie != "" {
		return cookie, "cookie"
	}
	return "", ""
}

// PostLogin handles POST /api/v1/auth/login - editor authentication
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_login_request", "")
	defer marker.Complete()
	log := h.logger.WithContext(logging.ChannelAuth, c.Request.Context())
	log.Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var loginReq struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		log.Error("Login request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.authService.Authenticate(loginReq.Password)
	if err != nil {
		log.Warn("Login attempt failed", "error", err.Error(), "duration", time.Since(start))
		marker.SetSuccess(false)
		respondError(c, err)
		return
	}

	c.SetCookie(
		authCookie,
		result.Token,
		int(time.Until(result.ExpiresAt).Seconds()),
		"/",
		"",
		config.SecureCookies,
		true,
	)

	log.Info("Login successful", "role", result.Role, "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"role":      result.Role,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"message":   "Login successful",
	})
}

// PostLogout handles POST /api/v1/auth/logout - clears the auth cookie
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	c.SetCookie(authCookie, "", -1, "/", "", config.SecureCookies, true)
	h.logger.WithContext(logging.ChannelAuth, c.Request.Context()).Info("Logout completed")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

// GetAuthStatus handles GET /api/v1/auth/status - checks current authentication status
func (h *AuthHandlers) GetAuthStatus(c *gin.Context) {
	token, method := tokenFromRequest(c)
	response := gin.H{
		"authenticated": false,
		"enabled":       h.authService.Enabled(),
	}

	if claims, err := h.authService.ValidateToken(token); err == nil {
		response["authenticated"] = true
		response["method"] = method
		response["role"] = claims.Role
		if claims.ExpiresAt != nil {
			response["expiresAt"] = claims.ExpiresAt.Time
		}
	}

	c.JSON(http.StatusOK, response)
}

// AuthMiddleware rejects requests without a valid editor token
func (h *AuthHandlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := tokenFromRequest(c)
		claims, err := h.authService.ValidateToken(token)
		if err != nil || claims.Role != security.RoleEditor {
			h.logger.WithContext(logging.ChannelAuth, c.Request.Context()).Warn("Unauthorized access attempt", "path", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set(editorKey, claims.Subject)
		c.Next()
	}
}
