// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	coreerrors "newscard-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case coreerrors.IsValidation(err):
		return huma.Error400BadRequest(err.Error())
	case coreerrors.IsInvalidSelection(err):
		return huma.Error422UnprocessableEntity(err.Error())
	case coreerrors.IsFetch(err):
		// The article page could not be retrieved; the upstream is at fault
		return huma.Error502BadGateway("Could not fetch article page", err)
	case coreerrors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout("Timed out rendering card")
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
