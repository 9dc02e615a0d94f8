package generation

import (
	"fmt"

	"github.com/blakehenkel24-eng/slidetheory/internal/llm"
	"github.com/blakehenkel24-eng/slidetheory/internal/prompts"
	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

const noDataProvided = "none provided"

// BuildPrompt renders the full generation prompt for a request.
// The request is expected to have defaults applied.
func BuildPrompt(req types.GenerateSlideRequest) (string, error) {
	tone, err := prompts.Get(prompts.SlidesFile, "audience-"+req.Audience)
	if err != nil {
		return "", fmt.Errorf("audience %q: %w", req.Audience, err)
	}
	mode, err := prompts.Get(prompts.SlidesFile, "mode-"+string(req.PresentationMode))
	if err != nil {
		return "", fmt.Errorf("presentation mode %q: %w", req.PresentationMode, err)
	}

	slideType := req.SlideType
	audience := req.Audience
	if slideType == types.SlideTypeAuto {
		slideType = "consulting"
	}
	if audience == types.AudienceAuto {
		audience = "general business"
	}

	instructions, err := prompts.Render(prompts.SlidesFile, "generate-instructions", map[string]string{
		"SlideType":    slideType,
		"Audience":     audience,
		"AudienceTone": tone,
		"ModeGuidance": mode,
	})
	if err != nil {
		return "", err
	}
	if req.SlideType == types.SlideTypeAuto {
		instructions += "\n" + prompts.MustGet(prompts.SlidesFile, "layout-auto")
	} else {
		instructions += fmt.Sprintf("\nUse the %q layout.", req.SlideType)
	}

	data := req.Data
	if data == "" {
		data = noDataProvided
	}
	brief, err := prompts.Render(prompts.SlidesFile, "brief", map[string]string{
		"KeyTakeaway": req.KeyTakeaway,
		"Context":     req.Context,
		"Data":        data,
	})
	if err != nil {
		return "", err
	}

	return llm.BuildStructuredPrompt(llm.SlideBlueprintSchema(), instructions, brief), nil
}
