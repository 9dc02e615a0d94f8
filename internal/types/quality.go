package types

// Severity ranks a validation issue
type Severity string

// Severity constants
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Dimension names one axis of slide quality
type Dimension string

// Dimension constants, in the order they are evaluated and reported
const (
	DimensionActionTitle      Dimension = "actionTitle"
	DimensionMECEStructure    Dimension = "meceStructure"
	DimensionPyramidPrinciple Dimension = "pyramidPrinciple"
	DimensionDataQuality      Dimension = "dataQuality"
	DimensionSoWhat           Dimension = "soWhat"
	DimensionVisualClarity    Dimension = "visualClarity"
)

// Dimensions returns every quality dimension in declaration order
func Dimensions() []Dimension {
	return []Dimension{
		DimensionActionTitle,
		DimensionMECEStructure,
		DimensionPyramidPrinciple,
		DimensionDataQuality,
		DimensionSoWhat,
		DimensionVisualClarity,
	}
}

// ValidationIssue is a single finding raised while scoring a blueprint
type ValidationIssue struct {
	Severity   Severity  `json:"severity"`
	Dimension  Dimension `json:"dimension"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// QualityDimensions holds the per-dimension scores, each in [1,4]
type QualityDimensions struct {
	ActionTitle      int `json:"actionTitle"`
	MECEStructure    int `json:"meceStructure"`
	PyramidPrinciple int `json:"pyramidPrinciple"`
	DataQuality      int `json:"dataQuality"`
	SoWhat           int `json:"soWhat"`
	VisualClarity    int `json:"visualClarity"`
}

// Get returns the score recorded for a dimension (0 for an unknown dimension)
func (d QualityDimensions) Get(dim Dimension) int {
	switch dim {
	case DimensionActionTitle:
		return d.ActionTitle
	case DimensionMECEStructure:
		return d.MECEStructure
	case DimensionPyramidPrinciple:
		return d.PyramidPrinciple
	case DimensionDataQuality:
		return d.DataQuality
	case DimensionSoWhat:
		return d.SoWhat
	case DimensionVisualClarity:
		return d.VisualClarity
	default:
		return 0
	}
}

// Set records the score for a dimension; unknown dimensions are ignored
func (d *QualityDimensions) Set(dim Dimension, score int) {
	switch dim {
	case DimensionActionTitle:
		d.ActionTitle = score
	case DimensionMECEStructure:
		d.MECEStructure = score
	case DimensionPyramidPrinciple:
		d.PyramidPrinciple = score
	case DimensionDataQuality:
		d.DataQuality = score
	case DimensionSoWhat:
		d.SoWhat = score
	case DimensionVisualClarity:
		d.VisualClarity = score
	}
}

// Values returns the six scores in dimension declaration order
func (d QualityDimensions) Values() []int {
	dims := Dimensions()
	values := make([]int, 0, len(dims))
	for _, dim := range dims {
		values = append(values, d.Get(dim))
	}
	return values
}

// QualityAssessment is the aggregated verdict for a slide blueprint
type QualityAssessment struct {
	Overall          float64           `json:"overall"`
	Dimensions       QualityDimensions `json:"dimensions"`
	IsExecutiveReady bool              `json:"isExecutiveReady"`
	Strengths        []string          `json:"strengths"`
	Improvements     []string          `json:"improvements"`
}
