package quality

import (
	"fmt"
	"strings"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// Label is a human-readable name for a score band with its display color
type Label struct {
	Text  string `json:"label"`
	Color string `json:"color"`
}

// Badge texts shown next to an assessment
const (
	BadgeExecutiveReady    = "Executive Ready"
	BadgeConsultantQuality = "Consultant Quality"
	BadgeNeedsRefinement   = "Needs Refinement"
)

// QualityLabel returns the label for an overall score
func QualityLabel(score float64) Label {
	switch {
	case score >= 3.5:
		return Label{Text: "Executive Ready", Color: "#10B981"}
	case score >= 3.0:
		return Label{Text: "Consultant Quality", Color: "#0D9488"}
	case score >= 2.0:
		return Label{Text: "Good - Needs Refinement", Color: "#F59E0B"}
	default:
		return Label{Text: "Needs Significant Work", Color: "#EF4444"}
	}
}

// Badge returns the badge text for an assessment
func Badge(a types.QualityAssessment) string {
	switch {
	case a.IsExecutiveReady:
		return BadgeExecutiveReady
	case a.Overall >= 3.0:
		return BadgeConsultantQuality
	default:
		return BadgeNeedsRefinement
	}
}

// UserFeedback returns a one-line actionable summary of an assessment
func UserFeedback(a types.QualityAssessment) string {
	if a.IsExecutiveReady {
		return "Excellent work! This slide meets top-tier consulting standards and is ready for executive presentation."
	}

	if a.Overall >= 3.0 {
		return fmt.Sprintf("Strong foundation! A few refinements will make this executive-ready: %s", firstN(a.Improvements, 1))
	}

	if a.Overall >= 2.0 {
		return fmt.Sprintf("Good start, but needs work. Focus on: %s", firstN(a.Improvements, 2))
	}

	return fmt.Sprintf("This slide needs significant revision. Priority fixes: %s", firstN(a.Improvements, 2))
}

func firstN(items []string, n int) string {
	return strings.Join(items[:min(n, len(items))], "; ")
}
