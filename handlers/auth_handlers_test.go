package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketing-mailer/auth"
)

func testGate() *auth.Gate {
	return auth.NewGate("admin@example.com", "hunter2", time.Hour)
}

// TestLoginHandler checks credential outcomes and that a session cookie is
// issued on success.
func TestLoginHandler(t *testing.T) {
	gate := testGate()

	recorder := runRequest(LoginHandler(gate), "POST", "/api/auth/login",
		`{"email": "admin@example.com", "password": "hunter2"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"success":true`)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	recorder = runRequest(LoginHandler(gate), "POST", "/api/auth/login",
		`{"email": "admin@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid credentials")
}

// TestLoginHandlerUnconfigured checks that unset secrets map to a server
// configuration error, not an auth failure.
func TestLoginHandlerUnconfigured(t *testing.T) {
	gate := auth.NewGate("", "", time.Hour)
	recorder := runRequest(LoginHandler(gate), "POST", "/api/auth/login",
		`{"email": "a@b.com", "password": "x"}`)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Server configuration error")
}

// TestMeHandler checks the session probe used by the frontend.
func TestMeHandler(t *testing.T) {
	gate := testGate()

	recorder := runRequest(MeHandler(gate), "GET", "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	token, err := gate.Login("admin@example.com", "hunter2")
	require.NoError(t, err)

	request := httptest.NewRequest("GET", "/api/auth/me", strings.NewReader(""))
	request.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	MeHandler(gate)(rec, request)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"admin@example.com"`)
	assert.Contains(t, rec.Body.String(), `"name":"Admin"`)
}

// TestLogoutHandler checks that the session is discarded and the cookie
// cleared.
func TestLogoutHandler(t *testing.T) {
	gate := testGate()
	token, err := gate.Login("admin@example.com", "hunter2")
	require.NoError(t, err)

	request := httptest.NewRequest("POST", "/api/auth/logout", strings.NewReader(""))
	request.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	recorder := httptest.NewRecorder()
	LogoutHandler(gate)(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	// Token no longer validates against the me endpoint.
	probe := httptest.NewRequest("GET", "/api/auth/me", strings.NewReader(""))
	probe.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	MeHandler(gate)(rec, probe)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
