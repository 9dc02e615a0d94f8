package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// SlideType values accepted by the generator ("auto" lets the model choose a layout)
const SlideTypeAuto = "auto"

// Audience values accepted by the generator
const (
	AudienceAuto        = "auto"
	AudienceCSuite      = "c-suite"
	AudienceBoard       = "board"
	AudienceInvestors   = "investors"
	AudienceWorkingTeam = "working-team"
	AudienceClients     = "clients"
)

// Audiences returns every accepted audience value
func Audiences() []string {
	return []string{AudienceAuto, AudienceCSuite, AudienceBoard, AudienceInvestors, AudienceWorkingTeam, AudienceClients}
}

// PresentationMode controls how dense the generated slide should be
type PresentationMode string

// PresentationMode constants
const (
	ModePresentation PresentationMode = "presentation"
	ModeRead         PresentationMode = "read"
)

// GenerateSlideRequest represents a request to generate a slide from free-text context
type GenerateSlideRequest struct {
	Context          string           `json:"context" validate:"required,min=1"`
	KeyTakeaway      string           `json:"keyTakeaway" validate:"required,min=1"`
	SlideType        string           `json:"slideType" validate:"omitempty,oneof=auto executive-summary issue-tree 2x2-matrix waterfall process-flow comparison"`
	Audience         string           `json:"audience" validate:"omitempty,oneof=auto c-suite board investors working-team clients"`
	Data             string           `json:"data,omitempty"`
	PresentationMode PresentationMode `json:"presentationMode,omitempty" validate:"omitempty,oneof=presentation read"`
}

// Validate validates the GenerateSlideRequest using the validator.
func (r *GenerateSlideRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// WithDefaults returns a copy of the request with empty selectors set to their defaults
func (r GenerateSlideRequest) WithDefaults() GenerateSlideRequest {
	if r.SlideType == "" {
		r.SlideType = SlideTypeAuto
	}
	if r.Audience == "" {
		r.Audience = AudienceAuto
	}
	if r.PresentationMode == "" {
		r.PresentationMode = ModePresentation
	}
	return r
}

// SlideData is a generated slide together with its quality assessment
type SlideData struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Content           string             `json:"content"`
	Layout            Layout             `json:"layout"`
	Blueprint         *SlideBlueprint    `json:"blueprint,omitempty"`
	GeneratedAt       time.Time          `json:"generatedAt"`
	QualityAssessment *QualityAssessment `json:"qualityAssessment,omitempty"`
	Issues            []ValidationIssue  `json:"issues,omitempty"`
	UsedFallback      bool               `json:"usedFallback"`
}

// GenerateSlideResponse is the API response envelope for slide generation
type GenerateSlideResponse struct {
	Success bool       `json:"success"`
	Slide   *SlideData `json:"slide,omitempty"`
	Error   string     `json:"error,omitempty"`
}
