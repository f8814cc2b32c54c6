package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fleetdock/internal/fleet/application"
	fleet "fleetdock/internal/fleet/domain"
)

// ShipsHandler serves the ship collection and its subresources.
type ShipsHandler struct {
	service *application.Service
}

// NewShipsHandler constructs a ships handler.
func NewShipsHandler(service *application.Service) (*ShipsHandler, error) {
	if service == nil {
		return nil, errors.New("ships handler: nil service")
	}
	return &ShipsHandler{service: service}, nil
}

// ServeHTTP routes ship endpoints.
func (h *ShipsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/ships" {
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

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/ships/")
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
	if len(parts) == 2 && r.Method == http.MethodGet {
		switch parts[1] {
		case "components":
			h.handleComponents(w, r, id)
			return
		case "jobs":
			h.handleJobs(w, r, id)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *ShipsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ships, err := h.service.Ships(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ships)
}

func (h *ShipsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var ship fleet.Ship
	if err := json.NewDecoder(r.Body).Decode(&ship); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := ship.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateShip(r.Context(), ship)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ShipsHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	ship, ok, err := h.service.ShipByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !ok {
		http.Error(w, "ship not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ship)
}

func (h *ShipsHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var patch fleet.ShipPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if patch.Name != nil && *patch.Name == "" {
		http.Error(w, "ship: empty name", http.StatusBadRequest)
		return
	}
	if patch.IMO != nil && !fleet.ValidIMO(*patch.IMO) {
		http.Error(w, "ship: IMO number must be 7 digits", http.StatusBadRequest)
		return
	}
	if patch.Flag != nil && *patch.Flag == "" {
		http.Error(w, "ship: empty flag", http.StatusBadRequest)
		return
	}
	if patch.Status != nil && !fleet.ValidShipStatus(*patch.Status) {
		http.Error(w, "ship: invalid status", http.StatusBadRequest)
		return
	}
	updated, err := h.service.UpdateShip(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if updated.ID == "" {
		http.Error(w, "ship not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ShipsHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !confirmed(r) {
		http.Error(w, "confirm=true required", http.StatusBadRequest)
		return
	}
	if _, ok, err := h.service.ShipByID(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	} else if !ok {
		http.Error(w, "ship not found", http.StatusNotFound)
		return
	}
	if err := h.service.DeleteShip(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShipsHandler) handleComponents(w http.ResponseWriter, r *http.Request, id string) {
	components, err := h.service.ComponentsByShip(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, components)
}

func (h *ShipsHandler) handleJobs(w http.ResponseWriter, r *http.Request, id string) {
	jobs, err := h.service.JobsByShip(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}
