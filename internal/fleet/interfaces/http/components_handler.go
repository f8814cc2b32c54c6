package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fleetdock/internal/fleet/application"
	fleet "fleetdock/internal/fleet/domain"
)

// ComponentsHandler serves the component collection.
type ComponentsHandler struct {
	service *application.Service
}

// NewComponentsHandler constructs a components handler.
func NewComponentsHandler(service *application.Service) (*ComponentsHandler, error) {
	if service == nil {
		return nil, errors.New("components handler: nil service")
	}
	return &ComponentsHandler{service: service}, nil
}

// ServeHTTP routes component endpoints.
func (h *ComponentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/components" {
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

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/components/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if len(parts) == 1 {
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
		return
	}
	if len(parts) == 2 && parts[1] == "jobs" && r.Method == http.MethodGet {
		h.handleJobs(w, r, id)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *ComponentsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if shipID := r.URL.Query().Get("shipId"); shipID != "" {
		components, err := h.service.ComponentsByShip(r.Context(), shipID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, components)
		return
	}
	components, err := h.service.Components(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, components)
}

func (h *ComponentsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var component fleet.Component
	if err := json.NewDecoder(r.Body).Decode(&component); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := component.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok, err := h.service.ShipByID(r.Context(), component.ShipID); err != nil {
		respondServiceError(w, err)
		return
	} else if !ok {
		http.Error(w, "unknown ship id", http.StatusBadRequest)
		return
	}
	component.NextMaintenanceDate = fleet.NextMaintenance(component.LastMaintenanceDate)
	created, err := h.service.CreateComponent(r.Context(), component)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ComponentsHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	component, ok, err := h.service.ComponentByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !ok {
		http.Error(w, "component not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, component)
}

func (h *ComponentsHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var patch fleet.ComponentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if patch.Name != nil && *patch.Name == "" {
		http.Error(w, "component: empty name", http.StatusBadRequest)
		return
	}
	if patch.SerialNumber != nil && *patch.SerialNumber == "" {
		http.Error(w, "component: empty serial number", http.StatusBadRequest)
		return
	}
	// A new last maintenance date re-derives the due date unless the caller
	// set one explicitly.
	if patch.LastMaintenanceDate != nil && patch.NextMaintenanceDate == nil {
		next := fleet.NextMaintenance(*patch.LastMaintenanceDate)
		patch.NextMaintenanceDate = &next
	}
	updated, err := h.service.UpdateComponent(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if updated.ID == "" {
		http.Error(w, "component not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ComponentsHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !confirmed(r) {
		http.Error(w, "confirm=true required", http.StatusBadRequest)
		return
	}
	if _, ok, err := h.service.ComponentByID(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	} else if !ok {
		http.Error(w, "component not found", http.StatusNotFound)
		return
	}
	if err := h.service.DeleteComponent(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ComponentsHandler) handleJobs(w http.ResponseWriter, r *http.Request, id string) {
	jobs, err := h.service.JobsByComponent(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}
