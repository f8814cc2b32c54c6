package http

import (
	"errors"
	"net/http"
	"strings"

	"fleetdock/internal/fleet/application"
)

// NotificationsHandler serves the notification feed.
type NotificationsHandler struct {
	service *application.Service
}

// NewNotificationsHandler constructs a notifications handler.
func NewNotificationsHandler(service *application.Service) (*NotificationsHandler, error) {
	if service == nil {
		return nil, errors.New("notifications handler: nil service")
	}
	return &NotificationsHandler{service: service}, nil
}

// ServeHTTP routes notification endpoints.
func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/notifications" {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleList(w, r)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/notifications/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if len(parts) == 1 && r.Method == http.MethodDelete {
		h.handleDismiss(w, r, id)
		return
	}
	if len(parts) == 2 && parts[1] == "read" && r.Method == http.MethodPost {
		h.handleMarkRead(w, r, id)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *NotificationsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	feed, err := h.service.Notifications(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *NotificationsHandler) handleMarkRead(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.MarkNotificationRead(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationsHandler) handleDismiss(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DismissNotification(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
