package quality

import (
	"fmt"
	"strings"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

const (
	minSupportingPoints = 3
	maxSupportingPoints = 5
)

// overlapIndicators hint that a point spills into another point's territory
var overlapIndicators = []string{"and", "also", "additionally", "furthermore"}

// validateMECEStructure scores whether the supporting points are mutually
// exclusive and collectively exhaustive
func validateMECEStructure(bp *types.SlideBlueprint) dimensionResult {
	points := bp.SupportingPoints
	s := newScorer(types.DimensionMECEStructure, baselineScore)

	if len(points) == 0 {
		s.set(minScore)
		s.emit(types.SeverityError, "No supporting points found", "Add 3-4 MECE supporting points")
		return s.result()
	}

	if len(points) < minSupportingPoints {
		s.capAt(2)
		s.emit(types.SeverityWarning,
			fmt.Sprintf("Only %d supporting points - may not be collectively exhaustive", len(points)),
			"Add more points to ensure complete coverage")
	} else if len(points) > maxSupportingPoints {
		s.capAt(2)
		s.emit(types.SeverityWarning,
			fmt.Sprintf("%d supporting points - may be too many for clarity", len(points)),
			"Consolidate into 3-4 key points")
	}

	// Each indicator counts once per point it appears in
	overlapCount := 0
	for _, point := range points {
		overlapCount += len(containsAny(strings.ToLower(point), overlapIndicators))
	}
	if overlapCount > 1 {
		s.capAt(2)
		s.emit(types.SeverityWarning,
			"Points may have overlapping content",
			"Ensure each point is mutually exclusive (no overlap)")
	}

	if len(points) >= minSupportingPoints && hasParallelStructure(points) {
		s.raiseTo(baselineScore)
	}

	return s.result()
}

// hasParallelStructure reports whether every point opens with the same word
func hasParallelStructure(points []string) bool {
	if len(points) == 0 {
		return false
	}
	first := firstWord(points[0])
	for _, point := range points[1:] {
		if firstWord(point) != first {
			return false
		}
	}
	return true
}

// firstWord returns the lowercased text before the first space
func firstWord(point string) string {
	word, _, _ := strings.Cut(point, " ")
	return strings.ToLower(word)
}
