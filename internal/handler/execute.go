package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/snippet-manager/internal/executor"
)

// ExecuteHandler handles remote code execution requests.
type ExecuteHandler struct {
	runner executor.Runner
	logger *slog.Logger
}

func NewExecuteHandler(runner executor.Runner, logger *slog.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		runner: runner,
		logger: logger,
	}
}

// HandleExecute submits code to the execution provider and waits for the
// terminal result. The provider's response body is passed through to the
// client as-is; this server adds no interpretation of the run outcome.
//
// POST /api/execute
func (h *ExecuteHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var req executor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	if req.SourceCode == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "sourceCode is required"})
		return
	}
	if req.LanguageID <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "languageId must be a positive integer"})
		return
	}

	h.logger.Info("executing code",
		slog.Int64("languageID", req.LanguageID),
		slog.Int("bytes", len(req.SourceCode)),
	)

	result, err := h.runner.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("code execution failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	// Raw is the provider's submission document, already indented JSON.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Raw); err != nil {
		h.logger.Error("failed to write execution result", slog.String("error", err.Error()))
	}
}
