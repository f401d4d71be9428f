package handlers

import (
	"net/http"

	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/dto"
	"github.com/ferrivbe/home-infrastructure/internal/ports"
)

// HealthHandler handles the service health probe.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a new HealthHandler with the given health registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Health handles GET /health. Returns 200 with healthy=true when every
// registered check passes, 503 with healthy=false otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	healthy := true
	for _, err := range h.registry.CheckAll(r.Context()) {
		if err != nil {
			healthy = false
			break
		}
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}

	dto.WriteJSON(w, r, code, dto.HealthResponse{Healthy: healthy})
}
