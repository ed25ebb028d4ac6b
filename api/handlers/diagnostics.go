// ABOUTME: Diagnostics handler exposes the HTML structure report for a page
// ABOUTME: Helps tune the site profile when extraction picks the wrong image

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newscard-api/core/interfaces"
	"newscard-api/pkg/featureflags"
)

// DiagnosticsHandler handles diagnostics requests
type DiagnosticsHandler struct {
	diagnostics interfaces.DiagnosticsService
	flags       featureflags.Manager
}

// NewDiagnosticsHandler creates a new diagnostics handler
func NewDiagnosticsHandler(diagnostics interfaces.DiagnosticsService, flags featureflags.Manager) *DiagnosticsHandler {
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults)
	}
	return &DiagnosticsHandler{diagnostics: diagnostics, flags: flags}
}

// RegisterRoutes registers diagnostics routes
func (h *DiagnosticsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "diagnosePage",
		Method:      http.MethodPost,
		Path:        "/diagnostics",
		Summary:     "Inspect page structure",
		Description: "Reports the images, article container and trusted-host image URLs found on a page, plus a reader-mode reading for comparison",
		Tags:        []string{"Diagnostics"},
	}, h.Diagnose)
}

// DiagnoseInput defines the input for the Diagnose operation
type DiagnoseInput struct {
	Body struct {
		URL string `json:"url" minLength:"1" doc:"Page URL"`
	}
}

// DiagnoseOutput defines the output for the Diagnose operation
type DiagnoseOutput struct {
	Body *interfaces.DiagnosticsReport
}

// Diagnose handles POST /diagnostics
func (h *DiagnosticsHandler) Diagnose(ctx context.Context, input *DiagnoseInput) (*DiagnoseOutput, error) {
	if h.diagnostics == nil || !h.flags.IsEnabled(ctx, featureflags.DiagnosticsEnabled) {
		return nil, huma.Error404NotFound("diagnostics are disabled")
	}

	report, err := h.diagnostics.Diagnose(ctx, input.Body.URL)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &DiagnoseOutput{Body: report}, nil
}
