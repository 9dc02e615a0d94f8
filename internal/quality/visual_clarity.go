package quality

import (
	"fmt"
	"strings"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// validateVisualClarity scores the layout choice and flags data that deserves a chart
func validateVisualClarity(bp *types.SlideBlueprint) dimensionResult {
	s := newScorer(types.DimensionVisualClarity, baselineScore)

	if !bp.Layout.IsStandard() {
		s.capAt(2)
		s.emit(types.SeverityWarning,
			fmt.Sprintf("Layout %q is not a standard consulting layout", bp.Layout),
			"Use one of: "+layoutList())
	}

	if len(bp.DataHighlights) >= 2 {
		chart := bp.ChartType()
		if chart == "" || chart == types.ChartTypeNone {
			s.emit(types.SeverityInfo,
				"Multiple data points present but no chart recommended",
				"Consider adding a bar chart or line chart to visualize trends")
		}
	}

	return s.result()
}

func layoutList() string {
	layouts := types.StandardLayouts()
	names := make([]string, 0, len(layouts))
	for _, l := range layouts {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}
