// Package auth implements the dashboard session gate: one admin identity from
// environment configuration, an in-memory session table, and an auth_token
// cookie.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie.
const CookieName = "auth_token"

var (
	// ErrNotConfigured is returned when the admin credentials are unset.
	ErrNotConfigured = errors.New("admin credentials are not configured")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session is one authenticated dashboard session.
type Session struct {
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Gate validates logins against the configured admin credentials and tracks
// sessions. There is a single admin; sessions only exist to bound cookie
// lifetime.
type Gate struct {
	adminEmail    string
	adminPassword string
	maxAge        time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewGate creates a session gate for the given admin credentials.
func NewGate(adminEmail, adminPassword string, maxAge time.Duration) *Gate {
	return &Gate{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		maxAge:        maxAge,
		sessions:      make(map[string]*Session),
	}
}

// Login checks the submitted credentials and returns a new session token.
func (g *Gate) Login(email, password string) (string, error) {
	if g.adminEmail == "" || g.adminPassword == "" {
		return "", ErrNotConfigured
	}
	if email != g.adminEmail || password != g.adminPassword {
		return "", ErrInvalidCredentials
	}

	token := uuid.New().String()
	now := time.Now()
	g.mu.Lock()
	g.sessions[token] = &Session{
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(g.maxAge),
	}
	g.mu.Unlock()
	return token, nil
}

// Logout discards the session for the given token, if any.
func (g *Gate) Logout(token string) {
	g.mu.Lock()
	delete(g.sessions, token)
	g.mu.Unlock()
}

// MaxAge returns the session lifetime in seconds, for cookie attributes.
func (g *Gate) MaxAge() int { return int(g.maxAge / time.Second) }

// Session returns the session for the request's cookie, or nil if there is
// none or it has expired.
func (g *Gate) Session(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	g.mu.RLock()
	session, ok := g.sessions[cookie.Value]
	g.mu.RUnlock()
	if !ok {
		return nil
	}

	if time.Now().After(session.ExpiresAt) {
		g.mu.Lock()
		delete(g.sessions, cookie.Value)
		g.mu.Unlock()
		return nil
	}
	return session
}

// IsAuthenticated checks whether the request carries a live session.
func (g *Gate) IsAuthenticated(r *http.Request) bool {
	return g.Session(r) != nil
}

// RequireAuth gates API routes. Login and health stay open, and the auth
// endpoints perform their own session checks. Page and asset requests pass
// through; the frontend redirects to the login page itself.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/auth/") || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") && !g.IsAuthenticated(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CleanupExpiredSessions drops expired sessions periodically.
func (g *Gate) CleanupExpiredSessions() {
	ticker := time.NewTicker(5 * time.Minute)
	go func() {
		for range ticker.C {
			now := time.Now()
			g.mu.Lock()
			for token, session := range g.sessions {
				if now.After(session.ExpiresAt) {
					delete(g.sessions, token)
				}
			}
			g.mu.Unlock()
		}
	}()
}
