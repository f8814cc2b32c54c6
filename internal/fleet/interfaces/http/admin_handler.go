package http

import (
	"errors"
	"net/http"

	"fleetdock/internal/auth"
)

// AdminHandler serves the admin-only user directory. Route access is gated
// by the admin route prefix in the auth middleware.
type AdminHandler struct {
	sessions *auth.Sessions
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(sessions *auth.Sessions) (*AdminHandler, error) {
	if sessions == nil {
		return nil, errors.New("admin handler: nil sessions")
	}
	return &AdminHandler{sessions: sessions}, nil
}

// ServeHTTP routes admin endpoints.
func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/admin/users" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.sessions.Users())
}
