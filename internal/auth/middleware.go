package auth

import (
	"context"
	"net/http"

	"github.com/sakif/snippet-manager/internal/model"
)

// CookieName is the HttpOnly cookie carrying the session token. HttpOnly
// keeps it out of reach of page scripts.
const CookieName = "token"

// contextKey is unexported so no other package can read or shadow the
// session value stored in a request context.
type contextKey struct{}

var sessionKey contextKey

// RequireAuth enforces authentication: a missing or invalid token ends the
// request with 401 before the handler runs. On success the session is
// available via SessionFromContext.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := extractSession(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the session when a valid token is present but never
// blocks the request. Listing endpoints use it: anonymous callers see the
// public subset, authenticated callers additionally see their own rows.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, err := extractSession(r, tokens); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the caller's session, or model.Anonymous when
// no valid token accompanied the request.
func SessionFromContext(ctx context.Context) model.Session {
	if sess, ok := ctx.Value(sessionKey).(model.Session); ok {
		return sess
	}
	return model.Anonymous
}

func extractSession(r *http.Request, tokens *TokenService) (model.Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return model.Anonymous, err
	}

	userID, err := tokens.Validate(cookie.Value)
	if err != nil {
		return model.Anonymous, err
	}

	return model.Session{UserID: userID}, nil
}
