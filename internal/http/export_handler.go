package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intl-tools/translator-service/internal/metrics"
	"github.com/intl-tools/translator-service/internal/service"
)

// ExportHandler handles consumer-facing export endpoints.
type ExportHandler struct {
	exports service.ExportService
	catalog service.CatalogService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exports service.ExportService, catalog service.CatalogService) *ExportHandler {
	return &ExportHandler{exports: exports, catalog: catalog}
}

// exportParams reads the format and pretty query parameters.
func exportParams(c *gin.Context) (service.ExportFormat, bool, bool) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return "", false, false
	}
	pretty, _ := strconv.ParseBool(c.DefaultQuery("pretty", "false"))
	return format, pretty, true
}

// Translations renders the current translations of a language as a flat
// key-to-value bundle. The :lang parameter accepts a language id or code.
func (h *ExportHandler) Translations(c *gin.Context) {
	format, pretty, ok := exportParams(c)
	if !ok {
		return
	}

	param := c.Param("lang")
	languageID, err := uuid.Parse(param)
	if err != nil {
		lang, err := h.catalog.LanguageByCode(c.Request.Context(), param)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		languageID = lang.ID
	}

	data, err := h.exports.TranslationsExport(c.Request.Context(), languageID, format, pretty)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	metrics.RecordExport("translations", string(format))
	c.Data(http.StatusOK, format.ContentType(), data)
}

// Keys renders the key tree built from the live key set.
func (h *ExportHandler) Keys(c *gin.Context) {
	format, pretty, ok := exportParams(c)
	if !ok {
		return
	}

	data, err := h.exports.KeysExport(c.Request.Context(), format, pretty)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	metrics.RecordExport("keys", string(format))
	c.Data(http.StatusOK, format.ContentType(), data)
}

// All returns the full catalog dump: languages, keys, translations and
// sanitized users.
func (h *ExportHandler) All(c *gin.Context) {
	dump, err := h.exports.ExportAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	metrics.RecordExport("all", string(service.FormatJSON))
	c.JSON(http.StatusOK, dump)
}
