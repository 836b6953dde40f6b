package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/snippet-manager/internal/auth"
	"github.com/sakif/snippet-manager/internal/model"
	"github.com/sakif/snippet-manager/internal/service"
)

// SnippetHandler manages the snippet CRUD endpoints.
type SnippetHandler struct {
	snippets *service.SnippetService
	logger   *slog.Logger
}

func NewSnippetHandler(snippets *service.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{
		snippets: snippets,
		logger:   logger,
	}
}

// parseID extracts and parses the {id} path parameter.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// HandleList returns the snippets visible to the caller: just the public
// ones for an anonymous request, owned plus public when authenticated.
//
// GET /api/snippets (behind OptionalAuth)
func (h *SnippetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	snippets, err := h.snippets.List(r.Context(), sess)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippets)
}

// HandleGet returns a single snippet.
//
// GET /api/snippets/{id}
func (h *SnippetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "snippet id must be a positive integer"})
		return
	}

	snippet, err := h.snippets.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippet)
}

// HandleCreate saves a new snippet owned by the session's user.
//
// POST /api/snippets (behind OptionalAuth; the service rejects anonymous
// callers with 401)
func (h *SnippetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var snippet model.Snippet
	if err := json.NewDecoder(r.Body).Decode(&snippet); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	sess := auth.SessionFromContext(r.Context())
	created, err := h.snippets.Create(r.Context(), sess, &snippet)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleEdit replaces the whole snippet row with the supplied fields.
// Fields absent from the body are stored as NULL; this is a full overwrite,
// not a patch.
//
// PUT /api/snippets/{id} (behind OptionalAuth)
func (h *SnippetHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "snippet id must be a positive integer"})
		return
	}

	var edit model.SnippetEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	sess := auth.SessionFromContext(r.Context())
	if err := h.snippets.Edit(r.Context(), sess, id, edit); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateMeta rewrites only the name, language and code fields.
//
// PATCH /api/snippets/{id}
func (h *SnippetHandler) HandleUpdateMeta(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "snippet id must be a positive integer"})
		return
	}

	var req struct {
		Name     string `json:"name"`
		Language string `json:"language"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	if err := h.snippets.UpdateMeta(r.Context(), id, req.Name, req.Language, req.Code); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete removes a snippet. Deleting an id that does not exist still
// answers 204.
//
// DELETE /api/snippets/{id}
func (h *SnippetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "snippet id must be a positive integer"})
		return
	}

	if err := h.snippets.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
