package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/blakehenkel24-eng/slidetheory/internal/db"
	"github.com/blakehenkel24-eng/slidetheory/internal/quality"
	"github.com/blakehenkel24-eng/slidetheory/internal/schemas"
	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// ValidateResponse is returned by POST /slides/validate
type ValidateResponse struct {
	Assessment types.QualityAssessment `json:"assessment"`
	Issues     []types.ValidationIssue `json:"issues"`
	Label      quality.Label           `json:"label"`
	Badge      string                  `json:"badge"`
	Feedback   string                  `json:"feedback"`
}

// ContractErrorResponse reports a blueprint that breaks the JSON contract
type ContractErrorResponse struct {
	Error   string        `json:"error"`
	Details []FieldDetail `json:"details,omitempty"`
}

// FieldDetail is one contract violation
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SearchRequest is the body of POST /slides/search
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// TemplatesResponse is returned by GET /templates
type TemplatesResponse struct {
	Templates []types.SlideTemplate `json:"templates"`
}

// ListSlidesResponse is returned by GET /slides
type ListSlidesResponse struct {
	Slides []db.SlideRecord `json:"slides"`
	Count  int              `json:"count"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"library": s.library != nil,
	})
}

// handleTemplates returns the template catalogue, optionally filtered by ?category=
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	templates := types.Templates()
	if category := r.URL.Query().Get("category"); category != "" {
		templates = types.TemplatesByCategory(category)
	}
	if templates == nil {
		templates = []types.SlideTemplate{}
	}
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{Templates: templates})
}

// handleGenerate generates, scores and (when a library is configured) stores a slide
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateSlideRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, types.GenerateSlideResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	slide, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		status := HTTPStatus(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			log.Printf("[generate] failed: %v", err)
			message = "Failed to generate slide"
		}
		s.jsonResponse(w, status, types.GenerateSlideResponse{Error: message})
		return
	}

	s.saveToLibrary(r, slide, req.Audience)
	s.jsonResponse(w, http.StatusOK, types.GenerateSlideResponse{Success: true, Slide: slide})
}

// saveToLibrary stores a slide; failures are logged and do not fail the request
func (s *Server) saveToLibrary(r *http.Request, slide *types.SlideData, audience string) {
	if s.library == nil {
		return
	}
	if _, err := s.library.SaveSlide(r.Context(), slide, audience); err != nil {
		log.Printf("[library] failed to save slide %s: %v", slide.ID, err)
	}
}

// handleValidate scores a raw blueprint document
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		s.handleError(w, &ErrValidation{Message: "request body is empty"})
		return
	}

	if err := schemas.ValidateBlueprint(string(body)); err != nil {
		s.contractError(w, err)
		return
	}

	var bp types.SlideBlueprint
	if err := json.Unmarshal(body, &bp); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid blueprint: "+err.Error())
		return
	}

	result, err := quality.ValidateSlideQuality(&bp)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ValidateResponse{
		Assessment: result.Assessment,
		Issues:     result.Issues,
		Label:      quality.QualityLabel(result.Assessment.Overall),
		Badge:      quality.Badge(result.Assessment),
		Feedback:   quality.UserFeedback(result.Assessment),
	})
}

func (s *Server) contractError(w http.ResponseWriter, err error) {
	var ve *schemas.ValidationError
	if !errors.As(err, &ve) {
		s.errorResponse(w, HTTPStatus(err), "Invalid blueprint: body is not valid JSON")
		return
	}

	details := make([]FieldDetail, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		details = append(details, FieldDetail{Field: fe.Field, Message: fe.Message})
	}
	s.jsonResponse(w, http.StatusBadRequest, ContractErrorResponse{
		Error:   "Blueprint does not match the slide blueprint contract",
		Details: details,
	})
}

// handleSearch runs a full-text search over the slide library
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		s.handleError(w, ErrLibraryUnavailable)
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.handleError(w, &ErrValidation{Field: "query", Message: "is required"})
		return
	}
	if req.Limit < 0 {
		s.handleError(w, &ErrValidation{Field: "limit", Message: "must not be negative"})
		return
	}

	result, err := s.library.SearchSlides(r.Context(), req.Query, req.Limit)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListSlides lists recently stored slides (?limit=)
func (s *Server) handleListSlides(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		s.handleError(w, ErrLibraryUnavailable)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.handleError(w, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	slides, err := s.library.ListSlides(r.Context(), limit)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListSlidesResponse{Slides: slides, Count: len(slides)})
}

// handleGetSlide returns one stored slide
func (s *Server) handleGetSlide(w http.ResponseWriter, r *http.Request) {
	if s.library == nil {
		s.handleError(w, ErrLibraryUnavailable)
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.handleError(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	rec, err := s.library.GetSlide(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if rec == nil {
		s.handleError(w, &ErrSlideNotFound{ID: idStr})
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}
