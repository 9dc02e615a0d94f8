package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blakehenkel24-eng/slidetheory/internal/generation"
	"github.com/blakehenkel24-eng/slidetheory/internal/llm"
	"github.com/blakehenkel24-eng/slidetheory/internal/quality"
	"github.com/blakehenkel24-eng/slidetheory/internal/schemas"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "query", Message: "is required"}
	assert.Equal(t, "validation error: query - is required", err.Error())

	err = &ErrValidation{Message: "body is empty"}
	assert.Equal(t, "validation error: body is empty", err.Error())
}

func TestErrSlideNotFound(t *testing.T) {
	err := &ErrSlideNotFound{ID: "abc"}
	assert.Equal(t, "slide not found: abc", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid blueprint", &quality.InvalidBlueprintError{Field: "title", Message: "field is required"}, http.StatusUnprocessableEntity},
		{"wrapped invalid blueprint", fmt.Errorf("score: %w", &quality.InvalidBlueprintError{Message: "blueprint is nil"}), http.StatusUnprocessableEntity},
		{"validation", &ErrValidation{Field: "query", Message: "is required"}, http.StatusBadRequest},
		{"generation request", &generation.RequestError{Message: "bad"}, http.StatusBadRequest},
		{"schema contract", &schemas.ValidationError{Schema: "slide_blueprint"}, http.StatusBadRequest},
		{"malformed json", &schemas.SchemaLoadError{Schema: "slide_blueprint", Message: "bad"}, http.StatusBadRequest},
		{"not found", &ErrSlideNotFound{ID: "x"}, http.StatusNotFound},
		{"library unavailable", ErrLibraryUnavailable, http.StatusServiceUnavailable},
		{"blocked brief", &generation.APICallError{Message: "failed", Cause: fmt.Errorf("%w: safety", llm.ErrResponseBlocked)}, http.StatusUnprocessableEntity},
		{"provider failure", &generation.APICallError{Message: "quota"}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
