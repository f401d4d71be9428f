// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/dto"
	"github.com/ferrivbe/home-infrastructure/internal/platform/logging"
	"github.com/ferrivbe/home-infrastructure/internal/ports"
)

// SourceHandler handles HTTP requests for source endpoint CRUD.
type SourceHandler struct {
	svc ports.SourceService
	log *logging.RequestLogger
}

// NewSourceHandler creates a new SourceHandler with the given service port.
func NewSourceHandler(svc ports.SourceService, log *logging.RequestLogger) *SourceHandler {
	return &SourceHandler{svc: svc, log: log}
}

// CreateSource handles POST /v1/sources.
func (h *SourceHandler) CreateSource(w http.ResponseWriter, r *http.Request) {
	var req dto.NewSourceRequest
	if !decodeAndValidate(w, r, h.log, &req) {
		return
	}

	created, err := h.svc.CreateSource(r.Context(), req.ToDomain())
	if err != nil {
		dto.WriteError(w, r, h.log, err)
		return
	}

	dto.WriteJSON(w, r, http.StatusCreated, dto.ToSourceResponse(created))
}

// ListSources handles GET /v1/sources.
func (h *SourceHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.svc.ListSources(r.Context())
	if err != nil {
		dto.WriteError(w, r, h.log, err)
		return
	}

	dto.WriteJSON(w, r, http.StatusOK, dto.ToSourceListResponse(sources))
}

// GetSource handles GET /v1/sources/{id}.
func (h *SourceHandler) GetSource(w http.ResponseWriter, r *http.Request) {
	source, err := h.svc.GetSource(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		dto.WriteError(w, r, h.log, err)
		return
	}

	dto.WriteJSON(w, r, http.StatusOK, dto.ToSourceResponse(source))
}

// UpdateSource handles PUT /v1/sources/{id}. The request body is a full
// replacement; identifier and creation timestamp are preserved.
func (h *SourceHandler) UpdateSource(w http.ResponseWriter, r *http.Request) {
	var req dto.NewSourceRequest
	if !decodeAndValidate(w, r, h.log, &req) {
		return
	}

	updated, err := h.svc.UpdateSource(r.Context(), chi.URLParam(r, "id"), req.ToDomain())
	if err != nil {
		dto.WriteError(w, r, h.log, err)
		return
	}

	dto.WriteJSON(w, r, http.StatusOK, dto.ToSourceResponse(updated))
}

// DeleteSource handles DELETE /v1/sources/{id}.
func (h *SourceHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSource(r.Context(), chi.URLParam(r, "id")); err != nil {
		dto.WriteError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
