package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blakehenkel24-eng/slidetheory/internal/generation"
	"github.com/blakehenkel24-eng/slidetheory/internal/llm"
	"github.com/blakehenkel24-eng/slidetheory/internal/quality"
	"github.com/blakehenkel24-eng/slidetheory/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSlideNotFound indicates no stored slide has the requested ID
type ErrSlideNotFound struct {
	ID string
}

func (e *ErrSlideNotFound) Error() string {
	return fmt.Sprintf("slide not found: %s", e.ID)
}

// ErrLibraryUnavailable is returned by library endpoints when no database is configured
var ErrLibraryUnavailable = errors.New("slide library is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalid    *quality.InvalidBlueprintError
		validation *ErrValidation
		request    *generation.RequestError
		contract   *schemas.ValidationError
		malformed  *schemas.SchemaLoadError
		notFound   *ErrSlideNotFound
	)

	switch {
	case errors.As(err, &invalid), errors.Is(err, llm.ErrResponseBlocked):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validation), errors.As(err, &request), errors.As(err, &contract), errors.As(err, &malformed):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, ErrLibraryUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
