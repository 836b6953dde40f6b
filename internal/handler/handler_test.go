package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/snippet-manager/internal/auth"
	"github.com/sakif/snippet-manager/internal/handler"
	"github.com/sakif/snippet-manager/internal/repository/sqlite"
	"github.com/sakif/snippet-manager/internal/service"
)

// newTestRouter wires an in-memory database, the services and the handlers
// into a router matching the real route table, so these tests exercise the
// same path a request takes in production.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	tokens, err := auth.NewTokenService("test-secret-key-at-least-16-chars")
	require.NoError(t, err)

	authSvc := service.NewAuthService(db.Users(), tokens, logger)
	snippetSvc := service.NewSnippetService(db.Snippets(), logger)

	authHandler := handler.NewAuthHandler(authSvc, logger)
	snippetHandler := handler.NewSnippetHandler(snippetSvc, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.With(auth.RequireAuth(tokens)).Get("/auth/me", authHandler.HandleMe)

		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokens))
			r.Get("/snippets", snippetHandler.HandleList)
			r.Get("/snippets/{id}", snippetHandler.HandleGet)
			r.Post("/snippets", snippetHandler.HandleCreate)
			r.Put("/snippets/{id}", snippetHandler.HandleEdit)
			r.Patch("/snippets/{id}", snippetHandler.HandleUpdateMeta)
			r.Delete("/snippets/{id}", snippetHandler.HandleDelete)
		})
	})
	return r
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, router http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns nothing; login failures fail the test.
func register(t *testing.T, router http.Handler, username, password string) {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/api/auth/register",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusCreated, rr.Code, "register %s: %s", username, rr.Body.String())
}

// login authenticates and returns the session cookie.
func login(t *testing.T, router http.Handler, username, password string) *http.Cookie {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, "login %s: %s", username, rr.Body.String())

	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("login response did not set the session cookie")
	return nil
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(into))
}
