// Package http provides the HTTP handlers and router for the translator service.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/domain/model"
	"github.com/intl-tools/translator-service/internal/middleware"
	"github.com/intl-tools/translator-service/internal/repository"
	"github.com/intl-tools/translator-service/internal/service"
)

// respond writes a SuccessResponse envelope with the request ID attached.
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(c),
		Timestamp: time.Now(),
	})
}

// respondError writes an ErrorResponse with the code derived from the status.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.NewError(dto.ErrCodeFromStatus(status), message).
		WithRequestID(middleware.GetRequestID(c)))
}

// respondServiceError maps repository and service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	status, message := statusFromError(err)
	respondError(c, status, message)
}

// statusFromError classifies an error from the service layer. Authentication
// failures collapse into one generic message so login responses do not reveal
// whether the account exists.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "Insufficient permissions"
	case errors.Is(err, service.ErrInvalidKey),
		errors.Is(err, model.ErrInvalidRole):
		return http.StatusBadRequest, err.Error()
	case service.IsKeyConflict(err):
		return http.StatusConflict, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, "Resource already exists"
	case errors.Is(err, repository.ErrIntegrity):
		return http.StatusConflict, "Resource is still referenced"
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable, "Store unavailable"
	default:
		return http.StatusInternalServerError, "An unexpected error occurred"
	}
}
