package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fleetdock/internal/fleet/application"
	"fleetdock/internal/observability/metrics"
	"fleetdock/internal/reporting"
)

// ExportHandler renders fleet report downloads.
type ExportHandler struct {
	service *application.Service
	now     func() time.Time
}

// NewExportHandler constructs an export handler.
func NewExportHandler(service *application.Service) (*ExportHandler, error) {
	if service == nil {
		return nil, errors.New("export handler: nil service")
	}
	return &ExportHandler{service: service, now: func() time.Time { return time.Now().UTC() }}, nil
}

// ServeHTTP routes export endpoints.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/exports/fleet.xlsx":
		h.handleExport(w, r, "xlsx")
	case "/api/v1/exports/fleet.pdf":
		h.handleExport(w, r, "pdf")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ExportHandler) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	report, err := h.buildReport(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	start := time.Now()
	var data []byte
	var contentType string
	switch format {
	case "xlsx":
		data, err = reporting.BuildFleetXLSX(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, err = reporting.BuildFleetPDF(report)
		contentType = "application/pdf"
	}
	if err != nil {
		http.Error(w, "export render error", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, start)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="fleet.`+format+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (h *ExportHandler) buildReport(r *http.Request) (reporting.Report, error) {
	ships, err := h.service.Ships(r.Context())
	if err != nil {
		return reporting.Report{}, err
	}
	components, err := h.service.Components(r.Context())
	if err != nil {
		return reporting.Report{}, err
	}
	jobs, err := h.service.Jobs(r.Context())
	if err != nil {
		return reporting.Report{}, err
	}
	return reporting.Report{
		Ships:       ships,
		Components:  components,
		Jobs:        jobs,
		GeneratedAt: h.now(),
	}, nil
}
