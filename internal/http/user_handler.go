package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/middleware"
	"github.com/intl-tools/translator-service/internal/service"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	identity service.IdentityService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(identity service.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// parseIDParam reads a UUID path parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id: "+c.Param(name))
		return uuid.Nil, false
	}
	return id, true
}

// List returns all users with password hashes blanked.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.identity.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, users)
}

// Create adds a new user. Admin only.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.identity.CreateUser(c.Request.Context(), middleware.GetCurrentUser(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, user.Sanitized())
}

// Update applies a partial update to a user.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.identity.UpdateUser(c.Request.Context(), middleware.GetCurrentUser(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, user.Sanitized())
}

// UpdatePassword replaces a user's password.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.identity.UpdatePassword(c.Request.Context(), middleware.GetCurrentUser(c), id, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, user.Sanitized())
}

// Delete removes a user and revokes their tokens. Admin only.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.identity.DeleteUser(c.Request.Context(), middleware.GetCurrentUser(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
