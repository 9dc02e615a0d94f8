package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/blakehenkel24-eng/slidetheory/internal/generation"
	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// SSE event names sent by POST /slides/generate/stream
const (
	EventProgress = "progress"
	EventSlide    = "slide"
	EventError    = "error"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent(EventError, map[string]string{"error": message}) //nolint:errcheck
}

// handleGenerateStream generates a slide and streams progress events before the result
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateSlideRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := generation.ContextWithProgress(r.Context(), func(e generation.ProgressEvent) {
		if err := sse.WriteEvent(EventProgress, e); err != nil {
			log.Printf("[generate] failed to stream progress: %v", err)
		}
	})

	slide, err := s.generator.Generate(ctx, req)
	if err != nil {
		if HTTPStatus(err) == http.StatusInternalServerError {
			log.Printf("[generate] failed: %v", err)
			sse.WriteError("Failed to generate slide")
			return
		}
		sse.WriteError(err.Error())
		return
	}

	s.saveToLibrary(r, slide, req.Audience)
	sse.WriteEvent(EventSlide, slide) //nolint:errcheck
}
