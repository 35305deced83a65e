package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"marketing-mailer/auth"
)

// LoginRequest is the JSON payload for a dashboard login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler checks the submitted credentials against the configured admin
// identity and sets the session cookie.
func LoginHandler(gate *auth.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errorResponse(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		token, err := gate.Login(req.Email, req.Password)
		switch {
		case errors.Is(err, auth.ErrNotConfigured):
			log.Println("Login rejected: ADMIN_EMAIL/ADMIN_PASSWORD are not set")
			errorResponse(w, "Server configuration error", http.StatusInternalServerError)
			return
		case errors.Is(err, auth.ErrInvalidCredentials):
			errorResponse(w, "Invalid credentials", http.StatusUnauthorized)
			return
		case err != nil:
			errorResponse(w, "Internal error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   gate.MaxAge(),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// MeHandler returns the logged-in admin identity, or 401 without a live
// session.
func MeHandler(gate *auth.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := gate.Session(r)
		if session == nil {
			respondWithJSON(w, http.StatusUnauthorized, map[string]interface{}{"user": nil})
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user": map[string]string{
				"name":  "Admin",
				"email": session.Email,
			},
		})
	}
}

// LogoutHandler discards the current session and clears the cookie.
func LogoutHandler(gate *auth.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(auth.CookieName); err == nil {
			gate.Logout(cookie.Value)
		}
		http.SetCookie(w, &http.Cookie{
			Name:   auth.CookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
