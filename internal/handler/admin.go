package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/snippet-manager/internal/auth"
	"github.com/sakif/snippet-manager/internal/service"
)

// AdminHandler exposes the operator surface: aggregate reports, account
// management, seeding and the raw-query escape hatch.
type AdminHandler struct {
	admin  *service.AdminService
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAdminHandler(admin *service.AdminService, authSvc *service.AuthService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		auth:   authSvc,
		logger: logger,
	}
}

// RequireAdmin rejects callers whose account is not admin level. Mounted
// after RequireAuth, so the session is always present here.
func RequireAdmin(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := auth.SessionFromContext(r.Context())

			admin, err := authSvc.IsAdmin(r.Context(), sess.UserID)
			if err != nil {
				writeError(w, err)
				return
			}
			if !admin {
				writeJSON(w, http.StatusForbidden, ErrorResponse{
					Error:   "forbidden",
					Message: "admin access required",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// HandleStats returns the aggregate report.
//
// GET /api/admin/stats
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.admin.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// HandleListUsers returns every account. Passwords never serialize; the
// model excludes them from JSON.
//
// GET /api/admin/users
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleAddUser inserts an account with an explicit access level. A
// duplicate username is a 409, unlike self-registration.
//
// POST /api/admin/users
func (h *AdminHandler) HandleAddUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Password    string `json:"password"`
		AccessLevel int    `json:"accessLevel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	id, err := h.auth.AddUser(r.Context(), req.Username, req.Password, req.AccessLevel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// HandleQuery runs an operator-supplied SQL statement. The service gates it
// on the admin level again and audit-logs the call.
//
// POST /api/admin/query
func (h *AdminHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		Args  []any  `json:"args"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "query is required"})
		return
	}

	sess := auth.SessionFromContext(r.Context())
	result, err := h.admin.RunQuery(r.Context(), sess, req.Query, req.Args...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSeed populates the database with generated throwaway accounts.
//
// POST /api/admin/seed
func (h *AdminHandler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.admin.SeedRandomUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inserted": inserted})
}
