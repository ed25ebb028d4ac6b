package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "newscard-api/core/errors"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "ValidationError returns 400",
			input:          &coreerrors.ValidationError{Field: "url", Message: "invalid URL"},
			expectedStatus: 400,
			expectedInMsg:  "invalid URL",
		},
		{
			name:           "InvalidSelectionError returns 422",
			input:          &coreerrors.InvalidSelectionError{Requested: 5, Available: 3},
			expectedStatus: 422,
			expectedInMsg:  "requested image 5 but only 3 images available",
		},
		{
			name:           "wrapped FetchError returns 502",
			input:          fmt.Errorf("extract: %w", &coreerrors.FetchError{URL: "https://example.com", StatusCode: 404}),
			expectedStatus: 502,
			expectedInMsg:  "Could not fetch article page",
		},
		{
			name:           "NotFoundError returns 404",
			input:          &coreerrors.NotFoundError{Resource: "cache entry", ID: "k"},
			expectedStatus: 404,
			expectedInMsg:  "cache entry not found",
		},
		{
			name:           "deadline returns 504",
			input:          context.DeadlineExceeded,
			expectedStatus: 504,
			expectedInMsg:  "Timed out",
		},
		{
			name:           "unknown error returns 500",
			input:          errors.New("boom"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			var statusErr huma.StatusError
			require.ErrorAs(t, result, &statusErr)
			assert.Equal(t, tt.expectedStatus, statusErr.GetStatus())
			assert.Contains(t, statusErr.Error(), tt.expectedInMsg)
		})
	}
}

func TestToHumaError_Nil(t *testing.T) {
	assert.NoError(t, toHumaError(nil))
}
