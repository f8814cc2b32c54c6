package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetdock/internal/auth"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrForbidden) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// Deletes cascade; the client has to confirm them explicitly.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
