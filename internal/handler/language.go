package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/snippet-manager/internal/service"
)

// LanguageHandler serves the supported-language catalog.
type LanguageHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

func NewLanguageHandler(catalog *service.CatalogService, logger *slog.Logger) *LanguageHandler {
	return &LanguageHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleList returns the stored catalog.
//
// GET /api/languages
func (h *LanguageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	languages, err := h.catalog.Languages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, languages)
}

// HandleGet returns one catalog entry by its provider-assigned id.
//
// GET /api/languages/{id}
func (h *LanguageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "language id must be a positive integer"})
		return
	}

	language, err := h.catalog.Language(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, language)
}

// HandleSync refreshes the catalog from the remote listing, replacing the
// stored copy wholesale.
//
// POST /api/admin/languages/sync (admin only)
func (h *LanguageHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalog.Sync(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"synced": count})
}
