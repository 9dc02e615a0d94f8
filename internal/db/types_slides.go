package db

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

const (
	// DefaultSearchLimit is the number of results returned when the caller does not ask for a limit
	DefaultSearchLimit = 5
	// DefaultListLimit is the number of slides listed when the caller does not ask for a limit
	DefaultListLimit = 20
	// MaxLimit caps any list or search request
	MaxLimit = 50
)

// SlideRecord is a generated slide stored in the library
type SlideRecord struct {
	ID             uuid.UUID                `json:"id"`
	Title          string                   `json:"title"`
	KeyMessage     string                   `json:"keyMessage"`
	Layout         types.Layout             `json:"layout"`
	Audience       string                   `json:"audience"`
	Content        string                   `json:"content"`
	Blueprint      *types.SlideBlueprint    `json:"blueprint"`
	Assessment     *types.QualityAssessment `json:"qualityAssessment,omitempty"`
	Overall        *float64                 `json:"overall,omitempty"`
	ExecutiveReady bool                     `json:"executiveReady"`
	UsedFallback   bool                     `json:"usedFallback"`
	CreatedAt      time.Time                `json:"createdAt"`
}

// ToSlideData converts a stored record back into the API representation
func (r *SlideRecord) ToSlideData() *types.SlideData {
	return &types.SlideData{
		ID:                r.ID.String(),
		Title:             r.Title,
		Content:           r.Content,
		Layout:            r.Layout,
		Blueprint:         r.Blueprint,
		GeneratedAt:       r.CreatedAt,
		QualityAssessment: r.Assessment,
		UsedFallback:      r.UsedFallback,
	}
}

// SearchText builds the text indexed for full-text search: title, key message and supporting points
func SearchText(bp *types.SlideBlueprint) string {
	if bp == nil {
		return ""
	}
	parts := make([]string, 0, len(bp.SupportingPoints)+2)
	for _, s := range append([]string{bp.TitleText(), bp.KeyMessageText()}, bp.SupportingPoints...) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// normalizeLimit applies the default for non-positive limits and caps at MaxLimit
func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, MaxLimit)
}

// SearchMethodText identifies results produced by full-text search
const SearchMethodText = "text"

// SearchResult is the outcome of a library search
type SearchResult struct {
	Slides []SlideRecord `json:"slides"`
	Count  int           `json:"count"`
	Method string        `json:"method"`
}

// roundTenth removes float32 storage noise from an overall score
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
