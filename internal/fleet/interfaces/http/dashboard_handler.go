package http

import (
	"errors"
	"net/http"
	"time"

	"fleetdock/internal/dashboard"
	"fleetdock/internal/fleet/application"
)

// DashboardHandler serves KPI, chart and calendar views derived from the
// live collections.
type DashboardHandler struct {
	service *application.Service
	now     func() time.Time
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(service *application.Service) (*DashboardHandler, error) {
	if service == nil {
		return nil, errors.New("dashboard handler: nil service")
	}
	return &DashboardHandler{service: service, now: func() time.Time { return time.Now().UTC() }}, nil
}

// ServeHTTP routes dashboard endpoints.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/dashboard/kpis":
		h.handleKPIs(w, r)
	case "/api/v1/dashboard/charts":
		h.handleCharts(w, r)
	case "/api/v1/calendar":
		h.handleCalendar(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *DashboardHandler) handleKPIs(w http.ResponseWriter, r *http.Request) {
	ships, err := h.service.Ships(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	components, err := h.service.Components(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	jobs, err := h.service.Jobs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard.Snapshot(ships, components, jobs, h.now()))
}

func (h *DashboardHandler) handleCharts(w http.ResponseWriter, r *http.Request) {
	ships, err := h.service.Ships(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	jobs, err := h.service.Jobs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard.BuildCharts(ships, jobs))
}

func (h *DashboardHandler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("month")
	if value == "" {
		http.Error(w, "month required", http.StatusBadRequest)
		return
	}
	month, err := time.Parse("2006-01", value)
	if err != nil {
		http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
		return
	}
	jobs, err := h.service.Jobs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard.Month(jobs, month.Year(), month.Month()))
}
