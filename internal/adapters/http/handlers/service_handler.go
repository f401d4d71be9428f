package handlers

import (
	"net/http"

	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/dto"
)

// ServiceHandler serves the service metadata document.
type ServiceHandler struct {
	serviceName string
	environment string
	version     string
}

// NewServiceHandler creates a new ServiceHandler reporting the given identity.
func NewServiceHandler(serviceName, environment, version string) *ServiceHandler {
	return &ServiceHandler{serviceName: serviceName, environment: environment, version: version}
}

// Service handles GET /service.
func (h *ServiceHandler) Service(w http.ResponseWriter, r *http.Request) {
	dto.WriteJSON(w, r, http.StatusOK, dto.ServiceResponse{
		ServiceName: h.serviceName,
		Environment: h.environment,
		Version:     h.version,
	})
}
