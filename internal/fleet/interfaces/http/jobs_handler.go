package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fleetdock/internal/fleet/application"
	fleet "fleetdock/internal/fleet/domain"
)

// JobsHandler serves the maintenance job collection.
type JobsHandler struct {
	service *application.Service
}

// NewJobsHandler constructs a jobs handler.
func NewJobsHandler(service *application.Service) (*JobsHandler, error) {
	if service == nil {
		return nil, errors.New("jobs handler: nil service")
	}
	return &JobsHandler{service: service}, nil
}

// ServeHTTP routes job endpoints.
func (h *JobsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/jobs" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/jobs/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *JobsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var jobs []fleet.Job
	var err error
	switch {
	case query.Get("shipId") != "":
		jobs, err = h.service.JobsByShip(r.Context(), query.Get("shipId"))
	case query.Get("componentId") != "":
		jobs, err = h.service.JobsByComponent(r.Context(), query.Get("componentId"))
	default:
		jobs, err = h.service.Jobs(r.Context())
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status := query.Get("status")
	priority := query.Get("priority")
	if status != "" || priority != "" {
		filtered := make([]fleet.Job, 0, len(jobs))
		for _, job := range jobs {
			if status != "" && job.Status != status {
				continue
			}
			if priority != "" && job.Priority != priority {
				continue
			}
			filtered = append(filtered, job)
		}
		jobs = filtered
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var job fleet.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := job.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok, err := h.service.ComponentByID(r.Context(), job.ComponentID); err != nil {
		respondServiceError(w, err)
		return
	} else if !ok {
		http.Error(w, "unknown component id", http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateJob(r.Context(), job)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *JobsHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	job, ok, err := h.service.JobByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobsHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var patch fleet.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if patch.Type != nil && !fleet.ValidJobType(*patch.Type) {
		http.Error(w, "job: invalid type", http.StatusBadRequest)
		return
	}
	if patch.Priority != nil && !fleet.ValidJobPriority(*patch.Priority) {
		http.Error(w, "job: invalid priority", http.StatusBadRequest)
		return
	}
	if patch.Status != nil && !fleet.ValidJobStatus(*patch.Status) {
		http.Error(w, "job: invalid status", http.StatusBadRequest)
		return
	}
	if patch.AssignedEngineerID != nil && *patch.AssignedEngineerID == "" {
		http.Error(w, "job: empty assigned engineer id", http.StatusBadRequest)
		return
	}
	updated, err := h.service.UpdateJob(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if updated.ID == "" {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *JobsHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !confirmed(r) {
		http.Error(w, "confirm=true required", http.StatusBadRequest)
		return
	}
	if _, ok, err := h.service.JobByID(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	} else if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if err := h.service.DeleteJob(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
