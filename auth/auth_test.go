package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate() *Gate {
	return NewGate("admin@example.com", "hunter2", time.Hour)
}

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest("GET", "/api/contacts", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return r
}

// TestLoginSuccess checks that valid credentials yield a live session.
func TestLoginSuccess(t *testing.T) {
	g := newTestGate()
	token, err := g.Login("admin@example.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session := g.Session(requestWithToken(token))
	require.NotNil(t, session)
	assert.Equal(t, "admin@example.com", session.Email)
}

// TestLoginInvalidCredentials checks rejection of wrong email or password.
func TestLoginInvalidCredentials(t *testing.T) {
	g := newTestGate()

	_, err := g.Login("admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = g.Login("intruder@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// TestLoginNotConfigured checks that unset secrets are a configuration error,
// not an open door.
func TestLoginNotConfigured(t *testing.T) {
	g := NewGate("", "", time.Hour)
	_, err := g.Login("", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

// TestSessionExpiry checks that an expired session stops validating and is
// dropped.
func TestSessionExpiry(t *testing.T) {
	g := NewGate("admin@example.com", "hunter2", -time.Second)
	token, err := g.Login("admin@example.com", "hunter2")
	require.NoError(t, err)

	assert.Nil(t, g.Session(requestWithToken(token)))
}

// TestLogout checks that a discarded token no longer validates.
func TestLogout(t *testing.T) {
	g := newTestGate()
	token, err := g.Login("admin@example.com", "hunter2")
	require.NoError(t, err)

	g.Logout(token)
	assert.Nil(t, g.Session(requestWithToken(token)))
}

// TestSessionUnknownToken checks that a forged cookie does not authenticate.
func TestSessionUnknownToken(t *testing.T) {
	g := newTestGate()
	assert.Nil(t, g.Session(requestWithToken("not-a-real-token")))
	assert.Nil(t, g.Session(requestWithToken("")))
}

// TestRequireAuth checks the middleware's path policy: login and health stay
// open, other API routes 401 without a session and pass with one.
func TestRequireAuth(t *testing.T) {
	g := newTestGate()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := g.RequireAuth(next)

	run := func(path, token string) int {
		r := httptest.NewRequest("GET", path, nil)
		if token != "" {
			r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run("/api/auth/login", ""))
	assert.Equal(t, http.StatusOK, run("/health", ""))
	assert.Equal(t, http.StatusUnauthorized, run("/api/contacts", ""))
	assert.Equal(t, http.StatusOK, run("/index.html", "")) // pages pass through

	token, err := g.Login("admin@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, run("/api/contacts", token))
}
