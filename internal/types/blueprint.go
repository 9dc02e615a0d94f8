// Package types provides type definitions for structured data used throughout the slidetheory system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Layout identifies one of the standard consulting slide layouts
type Layout string

// Layout constants define the supported slide layouts
const (
	LayoutExecutiveSummary Layout = "executive-summary"
	LayoutIssueTree        Layout = "issue-tree"
	Layout2x2Matrix        Layout = "2x2-matrix"
	LayoutWaterfall        Layout = "waterfall"
	LayoutProcessFlow      Layout = "process-flow"
	LayoutComparison       Layout = "comparison"
)

// ChartTypeNone is the chart type an upstream generator uses to say no chart is wanted
const ChartTypeNone = "none"

// StandardLayouts returns the standard consulting layouts in display order
func StandardLayouts() []Layout {
	return []Layout{
		LayoutExecutiveSummary,
		LayoutIssueTree,
		Layout2x2Matrix,
		LayoutWaterfall,
		LayoutComparison,
		LayoutProcessFlow,
	}
}

// IsStandard reports whether the layout is one of the standard consulting layouts
func (l Layout) IsStandard() bool {
	for _, std := range StandardLayouts() {
		if l == std {
			return true
		}
	}
	return false
}

// DataHighlight is a single metric called out on a slide together with what it means
type DataHighlight struct {
	Metric  string `json:"metric"`
	Context string `json:"context"`
}

// VisualElements carries rendering hints produced by the generator.
// Only ChartType is read by the quality engine.
type VisualElements struct {
	ChartType    string   `json:"chartType,omitempty"`
	CalloutBoxes []string `json:"calloutBoxes,omitempty"`
	Icons        []string `json:"icons,omitempty"`
}

// SlideStructure holds optional free-text regions of the rendered slide
type SlideStructure struct {
	Header      string `json:"header,omitempty"`
	Subheader   string `json:"subheader,omitempty"`
	MainContent string `json:"mainContent,omitempty"`
	Footer      string `json:"footer,omitempty"`
}

// SlideBlueprint is the structured representation of a generated slide.
//
// Title and KeyMessage are pointers so that a field missing from the JSON
// document (nil) can be told apart from one that is present but empty.
type SlideBlueprint struct {
	Title            *string         `json:"title"`
	Subtitle         string          `json:"subtitle,omitempty"`
	Layout           Layout          `json:"layout"`
	KeyMessage       *string         `json:"keyMessage"`
	SupportingPoints []string        `json:"supportingPoints"`
	DataHighlights   []DataHighlight `json:"dataHighlights,omitempty"`
	VisualElements   *VisualElements `json:"visualElements,omitempty"`
	SlideStructure   *SlideStructure `json:"slideStructure,omitempty"`
	ImagePrompt      string          `json:"imagePrompt,omitempty"`
}

// TitleText returns the title, or an empty string when the field is absent
func (b *SlideBlueprint) TitleText() string {
	if b == nil || b.Title == nil {
		return ""
	}
	return *b.Title
}

// KeyMessageText returns the key message, or an empty string when the field is absent
func (b *SlideBlueprint) KeyMessageText() string {
	if b == nil || b.KeyMessage == nil {
		return ""
	}
	return *b.KeyMessage
}

// ChartType returns the recommended chart type, or an empty string when none was given
func (b *SlideBlueprint) ChartType() string {
	if b == nil || b.VisualElements == nil {
		return ""
	}
	return b.VisualElements.ChartType
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
