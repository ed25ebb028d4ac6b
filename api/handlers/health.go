package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newscard-api/pkg/featureflags"
)

// HealthHandler reports liveness and the active feature flags
type HealthHandler struct {
	flags featureflags.Manager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(flags featureflags.Manager) *HealthHandler {
	return &HealthHandler{flags: flags}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body struct {
		Status   string          `json:"status"`
		Features map[string]bool `json:"features,omitempty"`
	}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "ok"
	if h.flags != nil {
		out.Body.Features = make(map[string]bool)
		for flag, on := range h.flags.GetAllFlags() {
			out.Body.Features[string(flag)] = on
		}
	}
	return out, nil
}
