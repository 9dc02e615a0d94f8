package types

// SlideTemplate describes a starting point offered to users
type SlideTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Templates returns the slide template catalogue
func Templates() []SlideTemplate {
	return []SlideTemplate{
		{ID: "executive-summary", Name: "Executive Summary", Category: "strategy", Description: "High-level overview for C-suite"},
		{ID: "market-analysis", Name: "Market Analysis", Category: "research", Description: "Market sizing and competitive landscape"},
		{ID: "financial-model", Name: "Financial Model", Category: "finance", Description: "Revenue projections and valuation"},
		{ID: "recommendation", Name: "Recommendation", Category: "strategy", Description: "Clear recommendation with rationale"},
		{ID: "problem-statement", Name: "Problem Statement", Category: "strategy", Description: "Define the core problem clearly"},
		{ID: "solution-overview", Name: "Solution Overview", Category: "strategy", Description: "Present solution approach"},
	}
}

// TemplatesByCategory returns the templates in a category, preserving catalogue order
func TemplatesByCategory(category string) []SlideTemplate {
	var out []SlideTemplate
	for _, t := range Templates() {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
