package services

import (
	"fmt"
	"time"

	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/security"
	"github.com/AtRiskMedia/tractstack-inspector/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds the editor credentials and token settings.
type AuthConfig struct {
	EditorPassword string
	JWTSecret      string
	TokenTTL       time.Duration
}

// AuthConfigFromEnv reads the auth settings from pkg/config.
func AuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		EditorPassword: config.EditorPassword,
		JWTSecret:      config.JWTSecret,
		TokenTTL:       config.EditorTokenTTL,
	}
}

// AuthService handles editor authentication and JWT operations
type AuthService struct {
	config AuthConfig
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service. Without a configured
// JWT secret a random one is generated, so tokens do not survive a restart.
func NewAuthService(cfg AuthConfig, logger *logging.ChanneledLogger) *AuthService {
	if cfg.JWTSecret == "" {
		key, err := security.GenerateSecureKey(64)
		if err != nil {
			logger.LogError(logging.ChannelAuth, "generate jwt secret", err, nil)
		} else {
			cfg.JWTSecret = key
			logger.Auth().Warn("JWT_SECRET is not set; using an ephemeral secret")
		}
	}
	return &AuthService{config: cfg, logger: logger}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Enabled reports whether an editor password is configured. Without one
// every write route stays closed.
func (a *AuthService) Enabled() bool {
	return a.config.EditorPassword != ""
}

// Authenticate checks password against the configured editor password and
// issues a token on success.
func (a *AuthService) Authenticate(password string) (*AuthResult, error) {
	if !a.Enabled() || password == "" {
		a.logger.LogAuthOperation("login", security.RoleEditor, false)
		return nil, ErrInvalidCredentials
	}

	ok := bcrypt.CompareHashAndPassword([]byte(a.config.EditorPassword), []byte(password)) == nil
	// Fallback for plaintext passwords in local setups
	if !ok && password == a.config.EditorPassword {
		ok = true
	}
	if !ok {
		a.logger.LogAuthOperation("login", security.RoleEditor, false)
		return nil, ErrInvalidCredentials
	}

	token, expires, err := security.GenerateEditorToken(security.RoleEditor, a.config.JWTSecret, a.config.TokenTTL)
	if err != nil {
		a.logger.Auth().Error("Token generation failed", "error", err)
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	a.logger.LogAuthOperation("login", security.RoleEditor, true)
	return &AuthResult{Token: token, Role: security.RoleEditor, ExpiresAt: expires}, nil
}

// ValidateToken returns the claims of a valid editor token.
func (a *AuthService) ValidateToken(token string) (*security.EditorClaims, error) {
	if token == "" {
		return nil, ErrInvalidCredentials
	}
	claims, err := security.ValidateJWT(token, a.config.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return claims, nil
}

// HashPassword returns a bcrypt hash suitable for EDITOR_PASSWORD.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %w", err)
	}
	return string(hashed), nil
}
