// Package generation turns a free-text brief into a scored consulting slide.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/blakehenkel24-eng/slidetheory/internal/llm"
	"github.com/blakehenkel24-eng/slidetheory/internal/quality"
	"github.com/blakehenkel24-eng/slidetheory/internal/schemas"
	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// Progress steps reported while generating a slide
const (
	StepPrompt   = "prompt"
	StepGenerate = "generate"
	StepDecode   = "decode"
	StepAssess   = "assess"
)

// ProgressEvent represents a progress update during generation
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called as generation moves through its steps.
// GenerateBatch calls it from several goroutines.
type ProgressCallback func(event ProgressEvent)

// Generator produces slides through an LLM and scores them with the quality engine
type Generator struct {
	client   llm.Client
	tier     llm.ModelTier
	progress ProgressCallback
	now      func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithTier selects the model tier used for generation
func WithTier(tier llm.ModelTier) Option {
	return func(g *Generator) { g.tier = tier }
}

// WithProgress registers a progress callback
func WithProgress(cb ProgressCallback) Option {
	return func(g *Generator) { g.progress = cb }
}

// WithClock overrides the time source used for GeneratedAt
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator backed by client
func New(client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		client: client,
		tier:   llm.TierStandard,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates the request, asks the model for a blueprint and scores it.
// Unusable model output is replaced with FallbackBlueprint; provider failures are returned as *APICallError.
func (g *Generator) Generate(ctx context.Context, req types.GenerateSlideRequest) (*types.SlideData, error) {
	if err := req.Validate(); err != nil {
		return nil, &RequestError{Message: "generate slide request failed validation", Cause: err}
	}
	req = req.WithDefaults()

	g.emit(ctx, StepPrompt, "building prompt")
	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	g.emit(ctx, StepGenerate, fmt.Sprintf("calling %s", g.client.GetModel(g.tier)))
	raw, err := g.client.GenerateJSON(ctx, prompt, g.tier)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate slide blueprint", Cause: err}
	}

	g.emit(ctx, StepDecode, "decoding blueprint")
	usedFallback := false
	content := llm.CleanJSONBlock(raw)
	bp, err := DecodeBlueprint(content)
	if err != nil {
		log.Printf("[generate] model output unusable, using fallback blueprint: %v", err)
		bp = FallbackBlueprint(req)
		usedFallback = true
		encoded, encErr := json.Marshal(bp)
		if encErr != nil {
			return nil, fmt.Errorf("failed to encode fallback blueprint: %w", encErr)
		}
		content = string(encoded)
	}

	g.emit(ctx, StepAssess, "scoring blueprint")
	result, err := quality.ValidateSlideQuality(bp)
	if err != nil {
		return nil, fmt.Errorf("failed to score blueprint: %w", err)
	}

	return &types.SlideData{
		ID:                uuid.NewString(),
		Title:             bp.TitleText(),
		Content:           content,
		Layout:            bp.Layout,
		Blueprint:         bp,
		GeneratedAt:       g.now().UTC(),
		QualityAssessment: &result.Assessment,
		Issues:            result.Issues,
		UsedFallback:      usedFallback,
	}, nil
}

// GenerateBatch generates slides concurrently with at most concurrency requests in flight.
// The first failure cancels the remaining requests; results keep request order.
func (g *Generator) GenerateBatch(ctx context.Context, reqs []types.GenerateSlideRequest, concurrency int) ([]*types.SlideData, error) {
	slides := make([]*types.SlideData, len(reqs))

	eg, egCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	for i, req := range reqs {
		eg.Go(func() error {
			slide, err := g.Generate(egCtx, req)
			if err != nil {
				return fmt.Errorf("slide %d: %w", i+1, err)
			}
			slides[i] = slide
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return slides, nil
}

// DecodeBlueprint parses model output into a blueprint.
// The output must satisfy the blueprint contract and carry both a title and a key message.
func DecodeBlueprint(content string) (*types.SlideBlueprint, error) {
	if err := schemas.ValidateBlueprint(content); err != nil {
		return nil, &ParseError{Message: "output does not match the blueprint contract", Cause: err}
	}

	var bp types.SlideBlueprint
	if err := json.Unmarshal([]byte(content), &bp); err != nil {
		return nil, &ParseError{Message: "output is not a blueprint object", Cause: err}
	}
	if bp.Title == nil {
		return nil, &ParseError{Message: "output has no title"}
	}
	if bp.KeyMessage == nil {
		return nil, &ParseError{Message: "output has no key message"}
	}
	return &bp, nil
}

// FallbackBlueprint builds a minimal blueprint straight from the request
func FallbackBlueprint(req types.GenerateSlideRequest) *types.SlideBlueprint {
	return &types.SlideBlueprint{
		Title:            types.StringPtr(req.KeyTakeaway),
		Layout:           types.LayoutExecutiveSummary,
		KeyMessage:       types.StringPtr(req.KeyTakeaway),
		SupportingPoints: []string{req.Context},
	}
}

type progressKey struct{}

// ContextWithProgress returns a context whose Generate calls also report progress to cb
func ContextWithProgress(ctx context.Context, cb ProgressCallback) context.Context {
	return context.WithValue(ctx, progressKey{}, cb)
}

func (g *Generator) emit(ctx context.Context, step, message string) {
	event := ProgressEvent{Step: step, Message: message}
	if g.progress != nil {
		g.progress(event)
	}
	if cb, ok := ctx.Value(progressKey{}).(ProgressCallback); ok && cb != nil {
		cb(event)
	}
}
