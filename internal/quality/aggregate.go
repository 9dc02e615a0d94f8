package quality

import (
	"math"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

const (
	// executiveReadyOverall is the minimum overall score for an executive-ready slide
	executiveReadyOverall = 3.5
	// executiveReadyDimension is the minimum score every dimension must reach
	executiveReadyDimension = 3
	// strengthThreshold is the dimension score at which a strength is reported
	strengthThreshold = 3
	// maxImprovements caps the number of improvement suggestions surfaced
	maxImprovements = 3

	fallbackStrength    = "Solid foundation with room for refinement"
	fallbackImprovement = "Minor polish could elevate this to executive-ready"
)

// dimensionStrengths describes each dimension when it scores well
var dimensionStrengths = map[types.Dimension]string{
	types.DimensionActionTitle:      "Action-oriented title with clear insight",
	types.DimensionMECEStructure:    "Well-structured supporting points",
	types.DimensionPyramidPrinciple: "Clear top-down communication flow",
	types.DimensionDataQuality:      "Data-supported arguments",
	types.DimensionSoWhat:           "Clear implications throughout",
	types.DimensionVisualClarity:    "Appropriate visual structure",
}

// aggregate combines dimension scores and issues into an assessment
func aggregate(dims types.QualityDimensions, issues []types.ValidationIssue) types.QualityAssessment {
	overall := overallScore(dims)
	return types.QualityAssessment{
		Overall:          overall,
		Dimensions:       dims,
		IsExecutiveReady: isExecutiveReady(overall, dims),
		Strengths:        strengths(dims),
		Improvements:     improvements(issues),
	}
}

// overallScore is the mean of the six dimensions rounded half-up to one decimal.
// A mean of six integers is k/6, so k/6*10 never lands exactly on .5 and the
// tie-break rule never actually applies.
func overallScore(dims types.QualityDimensions) float64 {
	values := dims.Values()
	sum := 0
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(len(values))
	return math.Floor(mean*10+0.5) / 10
}

func isExecutiveReady(overall float64, dims types.QualityDimensions) bool {
	if overall < executiveReadyOverall {
		return false
	}
	for _, v := range dims.Values() {
		if v < executiveReadyDimension {
			return false
		}
	}
	return true
}

func strengths(dims types.QualityDimensions) []string {
	var out []string
	for _, dim := range types.Dimensions() {
		if dims.Get(dim) >= strengthThreshold {
			out = append(out, dimensionStrengths[dim])
		}
	}
	if len(out) == 0 {
		return []string{fallbackStrength}
	}
	return out
}

// improvements surfaces the first non-info issues in emission order
func improvements(issues []types.ValidationIssue) []string {
	var out []string
	for _, issue := range issues {
		if issue.Severity == types.SeverityInfo {
			continue
		}
		text := issue.Suggestion
		if text == "" {
			text = issue.Message
		}
		out = append(out, text)
		if len(out) == maxImprovements {
			break
		}
	}
	if len(out) == 0 {
		return []string{fallbackImprovement}
	}
	return out
}
