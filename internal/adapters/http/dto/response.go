package dto

import (
	"time"

	"github.com/ferrivbe/home-infrastructure/internal/domain"
)

// SourceResponse represents a single source in HTTP responses.
type SourceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Protocol    string `json:"protocol"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ToSourceResponse converts a domain Source entity to an HTTP response DTO.
func ToSourceResponse(s *domain.Source) SourceResponse {
	return SourceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		Port:        s.Port,
		Username:    s.Username,
		Password:    s.Password,
		Protocol:    string(s.Protocol),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// ToSourceListResponse converts a slice of domain Source entities to the list
// response shape (a bare JSON array).
func ToSourceListResponse(sources []domain.Source) []SourceResponse {
	items := make([]SourceResponse, len(sources))
	for i := range sources {
		items[i] = ToSourceResponse(&sources[i])
	}
	return items
}

// HealthResponse reports whether the service and its dependencies are healthy.
type HealthResponse struct {
	Healthy bool `json:"healthy"`
}

// ServiceResponse is the service metadata document returned by GET /service.
type ServiceResponse struct {
	ServiceName string `json:"service_name"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}
