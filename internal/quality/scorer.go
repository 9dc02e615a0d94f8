package quality

import "github.com/blakehenkel24-eng/slidetheory/internal/types"

const (
	minScore = 1
	maxScore = 4
	// baselineScore is where most dimensions start before rules are applied ("good")
	baselineScore = 3
)

// dimensionResult is the outcome of a single dimension validator
type dimensionResult struct {
	score  int
	issues []types.ValidationIssue
}

// scorer folds ordered rule checks into a dimension score.
// capAt only ever lowers the running score; raiseTo only ever raises it.
type scorer struct {
	dimension types.Dimension
	score     int
	issues    []types.ValidationIssue
}

func newScorer(dimension types.Dimension, baseline int) *scorer {
	return &scorer{dimension: dimension, score: baseline}
}

// capAt lowers the score to at most limit
func (s *scorer) capAt(limit int) {
	s.score = min(s.score, limit)
}

// raiseTo lifts the score to at least floor
func (s *scorer) raiseTo(floor int) {
	s.score = max(s.score, floor)
}

// set overrides the score outright
func (s *scorer) set(score int) {
	s.score = score
}

func (s *scorer) emit(severity types.Severity, message, suggestion string) {
	s.issues = append(s.issues, types.ValidationIssue{
		Severity:   severity,
		Dimension:  s.dimension,
		Message:    message,
		Suggestion: suggestion,
	})
}

func (s *scorer) result() dimensionResult {
	return dimensionResult{
		score:  max(minScore, min(maxScore, s.score)),
		issues: s.issues,
	}
}
