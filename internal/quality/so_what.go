package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// soWhatIndicators introduce the implication of a stated fact
var soWhatIndicators = []string{
	"enabling", "allowing", "resulting", "leading to",
	"which means", "indicating", "suggesting", "demonstrating",
	"therefore", "thus", "as a result", "consequently",
}

// metricWithExplanationPattern matches a number followed later by an explanation word
var metricWithExplanationPattern = regexp.MustCompile(
	`(?i)\d+%?.*?\b(enabling|allowing|resulting|which|indicating|demonstrating|means)`)

// validateSoWhat scores the share of supporting points that state why they matter
func validateSoWhat(bp *types.SlideBlueprint) dimensionResult {
	points := bp.SupportingPoints
	s := newScorer(types.DimensionSoWhat, 2)

	if len(points) == 0 {
		return s.result()
	}

	soWhatCount := 0
	for i, point := range points {
		if hasSoWhat(point) {
			soWhatCount++
			continue
		}
		s.emit(types.SeverityWarning,
			fmt.Sprintf("Point %d may lack clear implication", i+1),
			"Add 'which means...' or 'enabling...' to explain why this matters")
	}

	s.set(soWhatScore(soWhatCount, len(points)))
	return s.result()
}

// hasSoWhat reports whether a point carries an implication phrase or an explained metric
func hasSoWhat(point string) bool {
	if len(containsAny(strings.ToLower(point), soWhatIndicators)) > 0 {
		return true
	}
	return metricWithExplanationPattern.MatchString(point)
}

// soWhatScore maps the fraction of points with implications onto the 1-4 scale
func soWhatScore(withSoWhat, total int) int {
	ratio := float64(withSoWhat) / float64(total)
	switch {
	case ratio == 1:
		return 4
	case ratio >= 0.75:
		return 3
	case ratio >= 0.5:
		return 2
	default:
		return 1
	}
}
