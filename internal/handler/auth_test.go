package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	router := newTestRouter(t)

	register(t, router, "olena", "s3cret")
	cookie := login(t, router, "olena", "s3cret")

	rr := doJSON(t, router, http.MethodGet, "/api/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var me struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	decodeBody(t, rr, &me)
	assert.Equal(t, "olena", me.Username)
	assert.Positive(t, me.ID)
}

// A taken username is reported as a normal answer, not an error status.
func TestRegister_TakenUsername(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "olena", "s3cret")

	rr := doJSON(t, router, http.MethodPost, "/api/auth/register",
		`{"username":"olena","password":"other"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Created bool `json:"created"`
	}
	decodeBody(t, rr, &body)
	assert.False(t, body.Created)
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "olena", "s3cret")

	rr := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"username":"olena","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// A fresh database carries the bootstrap admin account.
func TestLogin_BootstrapAdmin(t *testing.T) {
	router := newTestRouter(t)

	cookie := login(t, router, "admin", "admin")
	assert.NotNil(t, cookie)
}

func TestLogin_ResponseOmitsPassword(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "olena", "s3cret")

	rr := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"username":"olena","password":"s3cret"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "s3cret")
}

func TestMe_WithoutCookie(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "olena", "s3cret")
	cookie := login(t, router, "olena", "s3cret")

	rr := doJSON(t, router, http.MethodPost, "/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusNoContent, rr.Code)

	cleared := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == cookie.Name && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout should expire the session cookie")
}
