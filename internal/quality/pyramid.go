package quality

import (
	"strings"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// bottomUpIndicators signal a title that leads with method instead of insight
var bottomUpIndicators = []string{"based on", "from the", "according to", "analysis of"}

// validatePyramidPrinciple scores whether the slide leads with its conclusion
func validatePyramidPrinciple(bp *types.SlideBlueprint) dimensionResult {
	s := newScorer(types.DimensionPyramidPrinciple, baselineScore)

	if bp.KeyMessageText() == "" {
		s.set(minScore)
		s.emit(types.SeverityError,
			"No key message found",
			"Add a clear key message that synthesizes the supporting points")
		return s.result()
	}

	if len(bp.SupportingPoints) == 0 {
		s.capAt(2)
		s.emit(types.SeverityError,
			"Key message exists but no supporting points",
			"Add supporting evidence for the key message")
	}

	if len(containsAny(strings.ToLower(bp.TitleText()), bottomUpIndicators)) > 0 {
		s.capAt(2)
		s.emit(types.SeverityWarning,
			"Title suggests bottom-up structure",
			"Lead with the insight, not the analysis method")
	}

	return s.result()
}
