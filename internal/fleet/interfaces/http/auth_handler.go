package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetdock/internal/auth"
	"fleetdock/internal/observability/metrics"
)

// AuthHandler serves login, logout and the current session.
type AuthHandler struct {
	sessions *auth.Sessions
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(sessions *auth.Sessions) (*AuthHandler, error) {
	if sessions == nil {
		return nil, errors.New("auth handler: nil sessions")
	}
	return &AuthHandler{sessions: sessions}, nil
}

// ServeHTTP routes auth endpoints.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/auth/login" && r.Method == http.MethodPost:
		h.handleLogin(w, r)
	case r.URL.Path == "/api/v1/auth/logout" && r.Method == http.MethodPost:
		h.handleLogout(w, r)
	case r.URL.Path == "/api/v1/auth/me" && r.Method == http.MethodGet:
		h.handleMe(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	user, token, ok, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	metrics.ObserveLogin(ok)
	if !ok {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.CurrentUser()
	if !ok {
		http.Error(w, "no active session", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
