package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// formattedMetricPattern accepts numbers, percentages, dollar amounts and spelled-out magnitudes
var formattedMetricPattern = regexp.MustCompile(`(?i)\d+%?|\$[\d.]+[KMB]?|million|billion`)

// validateDataQuality scores whether data highlights are present, explained and well formatted.
// Absent highlights are neutral; present highlights with blank fields are penalized.
func validateDataQuality(bp *types.SlideBlueprint) dimensionResult {
	highlights := bp.DataHighlights
	s := newScorer(types.DimensionDataQuality, baselineScore)

	if len(highlights) == 0 {
		s.emit(types.SeverityInfo,
			"No data highlights provided",
			"Consider adding key metrics to strengthen the slide")
		return s.result()
	}

	validCount := 0
	for i, item := range highlights {
		if strings.TrimSpace(item.Metric) == "" {
			s.emit(types.SeverityWarning, fmt.Sprintf("Data highlight %d missing metric", i+1), "")
		} else {
			validCount++
		}

		if strings.TrimSpace(item.Context) == "" {
			s.capAt(2)
			s.emit(types.SeverityError,
				fmt.Sprintf("Data highlight %d missing context - what does the number mean?", i+1),
				"Add context explaining why this metric matters")
		}

		// A whitespace-only metric has already been reported as missing but is still checked for format
		if item.Metric != "" && !formattedMetricPattern.MatchString(item.Metric) {
			s.emit(types.SeverityInfo,
				fmt.Sprintf("Metric %q could be more clearly formatted", item.Metric),
				"Use K/M/B suffixes for large numbers and % for percentages")
		}
	}

	if validCount >= 2 {
		s.raiseTo(baselineScore)
	}

	return s.result()
}
