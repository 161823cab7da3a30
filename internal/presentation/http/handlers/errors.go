package handlers

import (
	"errors"
	"net/http"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/services"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
	"github.com/gin-gonic/gin"
)

// statusFor maps service and inspector errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrComponentNotFound), errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrComponentExists):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidComponent),
		errors.Is(err, inspector.ErrUnknownTab),
		errors.Is(err, inspector.ErrUnknownField),
		errors.Is(err, inspector.ErrOptionNotAllowed),
		errors.Is(err, inspector.ErrInvalidCheckbox):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
