package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intl-tools/translator-service/internal/domain/dto"
	"github.com/intl-tools/translator-service/internal/metrics"
	"github.com/intl-tools/translator-service/internal/middleware"
	"github.com/intl-tools/translator-service/internal/repository"
	"github.com/intl-tools/translator-service/internal/service"
)

// TranslationHandler handles translation and translation request endpoints.
type TranslationHandler struct {
	translations service.TranslationService
}

// NewTranslationHandler creates a new TranslationHandler.
func NewTranslationHandler(translations service.TranslationService) *TranslationHandler {
	return &TranslationHandler{translations: translations}
}

// Translate writes a translation version for a (key, language) pair.
func (h *TranslationHandler) Translate(c *gin.Context) {
	var req dto.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.translations.Translate(c.Request.Context(), middleware.GetCurrentUser(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	metrics.TranslationsWrittenTotal.Inc()
	respond(c, http.StatusCreated, result)
}

// Update revises the translation chain a row belongs to.
func (h *TranslationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.translations.UpdateTranslation(c.Request.Context(), middleware.GetCurrentUser(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	metrics.TranslationsWrittenTotal.Inc()
	respond(c, http.StatusOK, result)
}

// Delete soft-deletes a translation row.
func (h *TranslationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.translations.DeleteTranslation(c.Request.Context(), middleware.GetCurrentUser(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ForKey returns the current translation per language for a key. With a
// language_id query parameter it returns the full version history of that
// (key, language) pair instead.
func (h *TranslationHandler) ForKey(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if v := c.Query("language_id"); v != "" {
		languageID, err := uuid.Parse(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid language_id: "+v)
			return
		}
		history, err := h.translations.TranslationHistory(c.Request.Context(), id, languageID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respond(c, http.StatusOK, history)
		return
	}
	results, err := h.translations.TranslationsForKey(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, results)
}

// CreateRequest files a translation proposal for review.
func (h *TranslationHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateTranslationRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	proposal, err := h.translations.CreateRequest(c.Request.Context(), middleware.GetCurrentUser(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, proposal)
}

// ListRequests returns open proposals, optionally filtered by key or language.
func (h *TranslationHandler) ListRequests(c *gin.Context) {
	var filter repository.TranslationRequestFilter
	if v := c.Query("key_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid key_id: "+v)
			return
		}
		filter.KeyID = &id
	}
	if v := c.Query("language_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid language_id: "+v)
			return
		}
		filter.LanguageID = &id
	}

	proposals, err := h.translations.ListRequests(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, proposals)
}

// UpdateRequest mutates a pending proposal in place.
func (h *TranslationHandler) UpdateRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTranslationRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	proposal, err := h.translations.UpdateRequest(c.Request.Context(), middleware.GetCurrentUser(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, proposal)
}

// AcceptRequest promotes a proposal into a translation version.
func (h *TranslationHandler) AcceptRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.translations.AcceptRequest(c.Request.Context(), middleware.GetCurrentUser(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	metrics.TranslationsWrittenTotal.Inc()
	respond(c, http.StatusOK, result)
}

// DiscardRequest drops a proposal without promoting it.
func (h *TranslationHandler) DiscardRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.translations.DiscardRequest(c.Request.Context(), middleware.GetCurrentUser(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
