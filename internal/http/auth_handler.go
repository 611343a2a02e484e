package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	identity service.IdentityService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Login authenticates by username or email and returns the user together
// with a fresh bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.identity.Login(c.Request.Context(), req.User, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}
