package quality

import (
	"testing"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestQualityLabel(t *testing.T) {
	tests := []struct {
		score float64
		text  string
		color string
	}{
		{4.0, "Executive Ready", "#10B981"},
		{3.5, "Executive Ready", "#10B981"},
		{3.4, "Consultant Quality", "#0D9488"},
		{3.0, "Consultant Quality", "#0D9488"},
		{2.9, "Good - Needs Refinement", "#F59E0B"},
		{2.0, "Good - Needs Refinement", "#F59E0B"},
		{1.9, "Needs Significant Work", "#EF4444"},
	}

	for _, tt := range tests {
		label := QualityLabel(tt.score)
		assert.Equal(t, tt.text, label.Text, "score %.1f", tt.score)
		assert.Equal(t, tt.color, label.Color, "score %.1f", tt.score)
	}
}

func TestBadge(t *testing.T) {
	assert.Equal(t, BadgeExecutiveReady, Badge(types.QualityAssessment{Overall: 3.7, IsExecutiveReady: true}))
	assert.Equal(t, BadgeConsultantQuality, Badge(types.QualityAssessment{Overall: 3.7}))
	assert.Equal(t, BadgeConsultantQuality, Badge(types.QualityAssessment{Overall: 3.0}))
	assert.Equal(t, BadgeNeedsRefinement, Badge(types.QualityAssessment{Overall: 2.9}))
}

func TestUserFeedback(t *testing.T) {
	improvements := []string{"Fix title", "Add points", "Add data"}

	tests := []struct {
		name       string
		assessment types.QualityAssessment
		expected   string
	}{
		{
			name:       "executive ready",
			assessment: types.QualityAssessment{Overall: 3.8, IsExecutiveReady: true},
			expected:   "Excellent work! This slide meets top-tier consulting standards and is ready for executive presentation.",
		},
		{
			name:       "consultant quality names one fix",
			assessment: types.QualityAssessment{Overall: 3.3, Improvements: improvements},
			expected:   "Strong foundation! A few refinements will make this executive-ready: Fix title",
		},
		{
			name:       "good names two fixes",
			assessment: types.QualityAssessment{Overall: 2.3, Improvements: improvements},
			expected:   "Good start, but needs work. Focus on: Fix title; Add points",
		},
		{
			name:       "needs work",
			assessment: types.QualityAssessment{Overall: 1.5, Improvements: improvements[:1]},
			expected:   "This slide needs significant revision. Priority fixes: Fix title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFeedback(tt.assessment))
		})
	}
}
