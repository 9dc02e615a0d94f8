package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

const (
	minTitleWords       = 5
	maxTitleWords       = 15
	excellentTitleWords = 8
	excellentTitleMax   = 14
)

// weakTitleWords mark a descriptive ("topic") title rather than an insight
var weakTitleWords = []string{"analysis", "overview", "summary", "review", "update", "report"}

// actionVerbs describe a change or result
var actionVerbs = []string{
	"drove", "accelerated", "increased", "decreased", "achieved",
	"delivered", "captured", "unlocked", "enabled", "created",
	"grew", "reduced", "improved", "expanded", "transformed",
}

var (
	// metricPattern matches a number (optionally a percentage) or a dollar amount with K/M/B suffix
	metricPattern = regexp.MustCompile(`\d+%?|\$[\d.]+[KMB]?`)
	// auxiliaryVerbPattern finds a linking verb that makes a title a sentence
	auxiliaryVerbPattern = regexp.MustCompile(`\b(is|are|was|were|has|have|had)\b`)
)

// validateActionTitle scores whether the title states an insight as an action
func validateActionTitle(bp *types.SlideBlueprint) dimensionResult {
	title := bp.TitleText()
	titleLower := strings.ToLower(title)
	s := newScorer(types.DimensionActionTitle, baselineScore)

	wordCount := len(strings.Fields(title))
	if wordCount < minTitleWords {
		s.capAt(2)
		s.emit(types.SeverityWarning,
			"Title is too short - may lack sufficient insight",
			"Expand to 8-14 words with more context")
	} else if wordCount > maxTitleWords {
		s.capAt(2)
		s.emit(types.SeverityWarning,
			"Title is too long - may be difficult to parse quickly",
			"Condense to 8-14 words")
	}

	weakFound := containsAny(titleLower, weakTitleWords)
	if len(weakFound) > 0 {
		s.capAt(2)
		s.emit(types.SeverityError,
			"Title appears descriptive rather than action-oriented",
			fmt.Sprintf("Replace weak words like %q with action verbs and insights", strings.Join(weakFound, ", ")))
	}

	hasActionVerb := len(containsAny(titleLower, actionVerbs)) > 0
	if !hasActionVerb {
		s.capAt(2)
		s.emit(types.SeverityWarning,
			"Title may lack action orientation",
			"Include an action verb that describes the change or result")
	}

	hasMetric := metricPattern.MatchString(title)
	if !hasMetric && wordCount > minTitleWords {
		s.capAt(3)
		s.emit(types.SeverityInfo,
			"Title could be more specific with metrics",
			"Consider adding specific numbers (e.g., '15% growth' instead of 'significant growth')")
	}

	if !hasActionVerb && !auxiliaryVerbPattern.MatchString(titleLower) {
		s.capAt(2)
		s.emit(types.SeverityError,
			"Title may not be a complete sentence",
			"Ensure title has a clear subject and action")
	}

	if len(weakFound) == 0 && hasActionVerb && hasMetric &&
		wordCount >= excellentTitleWords && wordCount <= excellentTitleMax {
		s.set(maxScore)
	}

	return s.result()
}

// containsAny returns the needles found as substrings of haystack, in needle order.
// haystack is expected to be lowercased already.
func containsAny(haystack string, needles []string) []string {
	var found []string
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			found = append(found, needle)
		}
	}
	return found
}
