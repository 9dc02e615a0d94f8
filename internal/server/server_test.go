package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blakehenkel24-eng/slidetheory/internal/db"
	"github.com/blakehenkel24-eng/slidetheory/internal/generation"
	"github.com/blakehenkel24-eng/slidetheory/internal/llm"
	"github.com/blakehenkel24-eng/slidetheory/internal/quality"
	"github.com/blakehenkel24-eng/slidetheory/internal/server/ratelimit"
	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

const strongBlueprintJSON = `{
	"title": "Digital channels accelerated revenue growth to 15% across all regions",
	"layout": "executive-summary",
	"keyMessage": "Digital investment is paying off",
	"supportingPoints": [
		"Online sales grew 30%, enabling faster expansion",
		"Mobile checkout cut churn 12%, resulting in higher retention",
		"Partner referrals rose 20%, which means lower acquisition cost"
	],
	"dataHighlights": [
		{"metric": "15%", "context": "drove signup growth"},
		{"metric": "$2M", "context": "in new ARR"}
	],
	"visualElements": {"chartType": "bar"}
}`

// cannedClient answers every prompt with the same model output
type cannedClient struct {
	response string
}

func (c *cannedClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.response, nil
}

func (c *cannedClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.response, nil
}

func (c *cannedClient) GetModel(tier llm.ModelTier) string { return "canned" }

func (c *cannedClient) Close() error { return nil }

// errGenerator always fails with err
type errGenerator struct {
	err error
}

func (g *errGenerator) Generate(context.Context, types.GenerateSlideRequest) (*types.SlideData, error) {
	return nil, g.err
}

// memLibrary is an in-memory SlideLibrary
type memLibrary struct {
	mu      sync.Mutex
	slides  map[uuid.UUID]db.SlideRecord
	saveErr error
}

func newMemLibrary() *memLibrary {
	return &memLibrary{slides: make(map[uuid.UUID]db.SlideRecord)}
}

func (m *memLibrary) SaveSlide(_ context.Context, slide *types.SlideData, audience string) (*db.SlideRecord, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := db.SlideRecord{
		ID:         uuid.MustParse(slide.ID),
		Title:      slide.Title,
		KeyMessage: slide.Blueprint.KeyMessageText(),
		Layout:     slide.Layout,
		Audience:   audience,
		Content:    slide.Content,
		Blueprint:  slide.Blueprint,
		Assessment: slide.QualityAssessment,
		CreatedAt:  slide.GeneratedAt,
	}
	m.slides[rec.ID] = rec
	return &rec, nil
}

func (m *memLibrary) GetSlide(_ context.Context, id uuid.UUID) (*db.SlideRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.slides[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memLibrary) ListSlides(_ context.Context, _ int) ([]db.SlideRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.SlideRecord{}
	for _, rec := range m.slides {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memLibrary) SearchSlides(_ context.Context, query string, _ int) (*db.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := &db.SearchResult{Slides: []db.SlideRecord{}, Method: db.SearchMethodText}
	for _, rec := range m.slides {
		if strings.Contains(strings.ToLower(db.SearchText(rec.Blueprint)), strings.ToLower(query)) {
			res.Slides = append(res.Slides, rec)
		}
	}
	res.Count = len(res.Slides)
	return res, nil
}

func newTestServer(gen SlideGenerator, library SlideLibrary) http.Handler {
	if gen == nil {
		gen = generation.New(&cannedClient{response: strongBlueprintJSON})
	}
	return New(Config{}, gen, library, nil).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

const validGenerateBody = `{"context":"Q3 digital sales review","keyTakeaway":"Digital is driving growth","audience":"board"}`

func TestHealthEndpoint(t *testing.T) {
	w := do(t, newTestServer(nil, nil), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["library"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestTemplatesEndpoint(t *testing.T) {
	h := newTestServer(nil, nil)

	t.Run("all", func(t *testing.T) {
		resp := decode[TemplatesResponse](t, do(t, h, http.MethodGet, "/templates", ""))
		assert.Len(t, resp.Templates, 6)
		assert.Equal(t, "executive-summary", resp.Templates[0].ID)
	})

	t.Run("by category", func(t *testing.T) {
		resp := decode[TemplatesResponse](t, do(t, h, http.MethodGet, "/templates?category=finance", ""))
		require.Len(t, resp.Templates, 1)
		assert.Equal(t, "financial-model", resp.Templates[0].ID)
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/templates?category=sports", "")
		assert.JSONEq(t, `{"templates":[]}`, w.Body.String())
	})
}

func TestGenerateEndpoint(t *testing.T) {
	lib := newMemLibrary()
	h := newTestServer(nil, lib)

	w := do(t, h, http.MethodPost, "/slides/generate", validGenerateBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[types.GenerateSlideResponse](t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Slide)
	assert.Equal(t, "Digital channels accelerated revenue growth to 15% across all regions", resp.Slide.Title)
	require.NotNil(t, resp.Slide.QualityAssessment)
	assert.Equal(t, 3.3, resp.Slide.QualityAssessment.Overall)
	assert.False(t, resp.Slide.UsedFallback)

	stored, err := lib.GetSlide(context.Background(), uuid.MustParse(resp.Slide.ID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, types.AudienceBoard, stored.Audience)
}

func TestGenerateEndpoint_Fallback(t *testing.T) {
	h := newTestServer(generation.New(&cannedClient{response: "I cannot help with that"}), nil)

	w := do(t, h, http.MethodPost, "/slides/generate", validGenerateBody)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.GenerateSlideResponse](t, w)
	require.NotNil(t, resp.Slide)
	assert.True(t, resp.Slide.UsedFallback)
	assert.Equal(t, "Digital is driving growth", resp.Slide.Title)
}

func TestGenerateEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name       string
		gen        SlideGenerator
		body       string
		wantStatus int
		wantError  string
	}{
		{"malformed body", nil, `{"context":`, http.StatusBadRequest, "Invalid request body"},
		{"missing takeaway", nil, `{"context":"c"}`, http.StatusBadRequest, "failed validation"},
		{"unknown audience", nil, `{"context":"c","keyTakeaway":"k","audience":"interns"}`, http.StatusBadRequest, "failed validation"},
		{
			name:       "provider failure is not echoed",
			gen:        &errGenerator{err: &generation.APICallError{Message: "failed", Cause: errors.New("quota exceeded for key abc")}},
			body:       validGenerateBody,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate slide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(tt.gen, nil), http.MethodPost, "/slides/generate", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			resp := decode[types.GenerateSlideResponse](t, w)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.wantError)
			assert.NotContains(t, resp.Error, "quota")
		})
	}
}

func TestGenerateEndpoint_LibraryFailureIsNotFatal(t *testing.T) {
	lib := newMemLibrary()
	lib.saveErr = errors.New("disk full")

	w := do(t, newTestServer(nil, lib), http.MethodPost, "/slides/generate", validGenerateBody)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateStreamEndpoint(t *testing.T) {
	w := do(t, newTestServer(nil, nil), http.MethodPost, "/slides/generate/stream", validGenerateBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, 4, strings.Count(body, "event: progress\n"))
	assert.Contains(t, body, `"step":"assess"`)
	assert.Contains(t, body, "event: slide\n")
}

func TestGenerateStreamEndpoint_InvalidRequest(t *testing.T) {
	w := do(t, newTestServer(nil, nil), http.MethodPost, "/slides/generate/stream", `{"context":"c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateStreamEndpoint_ProviderError(t *testing.T) {
	gen := &errGenerator{err: &generation.APICallError{Message: "failed"}}
	w := do(t, newTestServer(gen, nil), http.MethodPost, "/slides/generate/stream", validGenerateBody)

	assert.Contains(t, w.Body.String(), "event: error\n")
	assert.Contains(t, w.Body.String(), "Failed to generate slide")
}

func TestValidateEndpoint(t *testing.T) {
	w := do(t, newTestServer(nil, nil), http.MethodPost, "/slides/validate", strongBlueprintJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[ValidateResponse](t, w)
	assert.Equal(t, 3.3, resp.Assessment.Overall)
	assert.False(t, resp.Assessment.IsExecutiveReady)
	assert.Empty(t, resp.Issues)
	assert.Equal(t, "Consultant Quality", resp.Label.Text)
	assert.Equal(t, quality.BadgeConsultantQuality, resp.Badge)
	assert.True(t, strings.HasPrefix(resp.Feedback, "Strong foundation!"))
}

func TestValidateEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"empty body", "", http.StatusBadRequest, "request body is empty"},
		{"malformed json", `{"title":`, http.StatusBadRequest, "not valid JSON"},
		{"wrong field type", `{"title":5,"keyMessage":"k","layout":"comparison","supportingPoints":[]}`, http.StatusBadRequest, "contract"},
		{"missing title", `{"keyMessage":"k","layout":"comparison","supportingPoints":["a"]}`, http.StatusUnprocessableEntity, "title"},
		{"null key message", `{"title":"t","keyMessage":null,"layout":"comparison","supportingPoints":["a"]}`, http.StatusUnprocessableEntity, "keyMessage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(nil, nil), http.MethodPost, "/slides/validate", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			resp := decode[ContractErrorResponse](t, w)
			assert.Contains(t, resp.Error, tt.wantError)
		})
	}
}

func TestValidateEndpoint_ContractDetails(t *testing.T) {
	w := do(t, newTestServer(nil, nil), http.MethodPost, "/slides/validate",
		`{"title":"t","keyMessage":"k","layout":"comparison","supportingPoints":"not a list"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[ContractErrorResponse](t, w)
	require.NotEmpty(t, resp.Details)
	assert.Equal(t, "supportingPoints", resp.Details[0].Field)
}

func TestLibraryEndpoints_Unavailable(t *testing.T) {
	h := newTestServer(nil, nil)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/slides/search", `{"query":"growth"}`},
		{http.MethodGet, "/slides", ""},
		{http.MethodGet, "/slides/" + uuid.NewString(), ""},
	} {
		w := do(t, h, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, tc.path)
	}
}

func TestSearchEndpoint(t *testing.T) {
	lib := newMemLibrary()
	h := newTestServer(nil, lib)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/slides/generate", validGenerateBody).Code)

	t.Run("match", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/slides/search", `{"query":"mobile checkout","limit":3}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[db.SearchResult](t, w)
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, db.SearchMethodText, resp.Method)
	})

	t.Run("no match", func(t *testing.T) {
		resp := decode[db.SearchResult](t, do(t, h, http.MethodPost, "/slides/search", `{"query":"hiring"}`))
		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Slides)
	})

	t.Run("blank query", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/slides/search", `{"query":"  "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative limit", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/slides/search", `{"query":"growth","limit":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetSlideEndpoint(t *testing.T) {
	lib := newMemLibrary()
	h := newTestServer(nil, lib)

	gen := decode[types.GenerateSlideResponse](t, do(t, h, http.MethodPost, "/slides/generate", validGenerateBody))
	require.NotNil(t, gen.Slide)

	t.Run("found", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/slides/"+gen.Slide.ID, "")
		require.Equal(t, http.StatusOK, w.Code)

		rec := decode[db.SlideRecord](t, w)
		assert.Equal(t, gen.Slide.ID, rec.ID.String())
		assert.Equal(t, gen.Slide.Title, rec.Title)
	})

	t.Run("not found", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/slides/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/slides/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		resp := decode[ListSlidesResponse](t, do(t, h, http.MethodGet, "/slides?limit=5", ""))
		assert.Equal(t, 1, resp.Count)

		w := do(t, h, http.MethodGet, "/slides?limit=many", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRateLimit_GenerateIsThrottled(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{{Path: "/slides/generate", Method: http.MethodPost, Limit: 1, Window: time.Hour}},
	})
	defer limiter.Stop()

	h := New(Config{}, generation.New(&cannedClient{response: strongBlueprintJSON}), nil, limiter).Handler()

	first := do(t, h, http.MethodPost, "/slides/generate", validGenerateBody)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := do(t, h, http.MethodPost, "/slides/generate", validGenerateBody)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, second)["error"])

	// Scoring is budgeted separately
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/slides/validate", strongBlueprintJSON).Code)
}

func TestRateLimit_StreamedGenerateIsThrottled(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(6, time.Hour),
	})
	defer limiter.Stop()

	h := New(Config{}, generation.New(&cannedClient{response: strongBlueprintJSON}), nil, limiter).Handler()

	var codes []int
	for range 5 {
		codes = append(codes, do(t, h, http.MethodPost, "/slides/generate/stream", validGenerateBody).Code)
	}
	// Burst of one, then throttled
	assert.Equal(t, []int{200, 429, 429, 429, 429}, codes)
}

func TestRateLimit_SlideLookupsShareBudget(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(30, time.Hour),
	})
	defer limiter.Stop()

	h := New(Config{}, generation.New(&cannedClient{response: strongBlueprintJSON}), newMemLibrary(), limiter).Handler()

	for i := range 30 {
		w := do(t, h, http.MethodGet, "/slides/"+uuid.NewString(), "")
		require.NotEqual(t, http.StatusTooManyRequests, w.Code, "request %d", i+1)
	}
	w := do(t, h, http.MethodGet, "/slides/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, newTestServer(nil, nil), http.MethodOptions, "/slides/generate", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFoundRoute(t *testing.T) {
	w := do(t, newTestServer(nil, nil), http.MethodGet, "/runs", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
