package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/middleware"
	"github.com/intl-tools/translator-service/internal/service"
)

// CatalogHandler handles language and key endpoints.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListLanguages returns all languages.
func (h *CatalogHandler) ListLanguages(c *gin.Context) {
	languages, err := h.catalog.Languages(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, languages)
}

// GetLanguage returns a single language by id.
func (h *CatalogHandler) GetLanguage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	lang, err := h.catalog.Language(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, lang)
}

// CreateLanguage adds a new language. Reviewer or admin.
func (h *CatalogHandler) CreateLanguage(c *gin.Context) {
	var req dto.CreateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	lang, err := h.catalog.CreateLanguage(c.Request.Context(), middleware.GetCurrentUser(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, lang)
}

// UpdateLanguage applies a partial update to a language.
func (h *CatalogHandler) UpdateLanguage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	lang, err := h.catalog.UpdateLanguage(c.Request.Context(), middleware.GetCurrentUser(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, lang)
}

// DeleteLanguage removes a language that has no translations. Admin only.
func (h *CatalogHandler) DeleteLanguage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteLanguage(c.Request.Context(), middleware.GetCurrentUser(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListKeys returns all live keys.
func (h *CatalogHandler) ListKeys(c *gin.Context) {
	keys, err := h.catalog.Keys(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, keys)
}

// GetKey returns a single key by id.
func (h *CatalogHandler) GetKey(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	key, err := h.catalog.Key(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, key)
}

// CreateKey validates and inserts a new translation key.
func (h *CatalogHandler) CreateKey(c *gin.Context) {
	var req dto.CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	key, err := h.catalog.CreateKey(c.Request.Context(), middleware.GetCurrentUser(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, key)
}

// UpdateKey renames a key or updates its description.
func (h *CatalogHandler) UpdateKey(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	key, err := h.catalog.UpdateKey(c.Request.Context(), middleware.GetCurrentUser(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, key)
}

// DeleteKey removes a key and hides its translation history. Reviewer or admin.
func (h *CatalogHandler) DeleteKey(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteKey(c.Request.Context(), middleware.GetCurrentUser(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
