package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleetdock/internal/auth"
	"fleetdock/internal/fleet/application"
)

// ExemptPaths are served without a session token.
var ExemptPaths = []string{"/healthz", "/metrics", "/api/v1/auth/login"}

// NewRouter assembles the API surface behind the auth middleware.
func NewRouter(service *application.Service, sessions *auth.Sessions, secret []byte) (http.Handler, error) {
	authHandler, err := NewAuthHandler(sessions)
	if err != nil {
		return nil, err
	}
	shipsHandler, err := NewShipsHandler(service)
	if err != nil {
		return nil, err
	}
	componentsHandler, err := NewComponentsHandler(service)
	if err != nil {
		return nil, err
	}
	jobsHandler, err := NewJobsHandler(service)
	if err != nil {
		return nil, err
	}
	notificationsHandler, err := NewNotificationsHandler(service)
	if err != nil {
		return nil, err
	}
	dashboardHandler, err := NewDashboardHandler(service)
	if err != nil {
		return nil, err
	}
	exportHandler, err := NewExportHandler(service)
	if err != nil {
		return nil, err
	}
	adminHandler, err := NewAdminHandler(sessions)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/auth/", authHandler)
	mux.Handle("/api/v1/ships", shipsHandler)
	mux.Handle("/api/v1/ships/", shipsHandler)
	mux.Handle("/api/v1/components", componentsHandler)
	mux.Handle("/api/v1/components/", componentsHandler)
	mux.Handle("/api/v1/jobs", jobsHandler)
	mux.Handle("/api/v1/jobs/", jobsHandler)
	mux.Handle("/api/v1/notifications", notificationsHandler)
	mux.Handle("/api/v1/notifications/", notificationsHandler)
	mux.Handle("/api/v1/dashboard/", dashboardHandler)
	mux.Handle("/api/v1/calendar", dashboardHandler)
	mux.Handle("/api/v1/exports/", exportHandler)
	mux.Handle("/api/v1/admin/users", adminHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	middleware := auth.NewMiddleware(secret, auth.NewDefaultPolicy(ExemptPaths))
	return middleware.Wrap(mux), nil
}
