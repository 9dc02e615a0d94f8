// Package quality scores slide blueprints against consulting communication standards.
//
// Six independent validators each inspect one facet of a blueprint and return a
// 1-4 score plus issues. Their results are aggregated into an overall score, an
// executive-ready verdict, and human-readable strengths and improvements.
// Scoring is pure: there is no I/O or shared state, so it is safe to call
// from any number of goroutines.
package quality

import (
	"context"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of scoring one blueprint
type Result struct {
	Assessment types.QualityAssessment `json:"assessment"`
	Issues     []types.ValidationIssue `json:"issues"`
}

// validators run in this order; improvements depend on issue emission order
var validators = []struct {
	dimension types.Dimension
	validate  func(*types.SlideBlueprint) dimensionResult
}{
	{types.DimensionActionTitle, validateActionTitle},
	{types.DimensionMECEStructure, validateMECEStructure},
	{types.DimensionPyramidPrinciple, validatePyramidPrinciple},
	{types.DimensionDataQuality, validateDataQuality},
	{types.DimensionSoWhat, validateSoWhat},
	{types.DimensionVisualClarity, validateVisualClarity},
}

// ValidateSlideQuality scores a blueprint on all six dimensions.
// It returns an *InvalidBlueprintError when the blueprint is nil or its title
// or key message field is absent; otherwise it always returns a full assessment.
func ValidateSlideQuality(bp *types.SlideBlueprint) (*Result, error) {
	if err := checkRequiredFields(bp); err != nil {
		return nil, err
	}

	var dims types.QualityDimensions
	issues := []types.ValidationIssue{}

	for _, v := range validators {
		res := v.validate(bp)
		dims.Set(v.dimension, res.score)
		issues = append(issues, res.issues...)
	}

	return &Result{
		Assessment: aggregate(dims, issues),
		Issues:     issues,
	}, nil
}

func checkRequiredFields(bp *types.SlideBlueprint) error {
	if bp == nil {
		return &InvalidBlueprintError{Message: "blueprint is nil"}
	}
	if bp.Title == nil {
		return &InvalidBlueprintError{Field: "title", Message: "field is required"}
	}
	if bp.KeyMessage == nil {
		return &InvalidBlueprintError{Field: "keyMessage", Message: "field is required"}
	}
	return nil
}

// BatchItem pairs a blueprint's position in a batch with its outcome
type BatchItem struct {
	Index  int
	Result *Result
	Err    error
}

// ValidateBatch scores blueprints concurrently with at most concurrency workers.
// Per-blueprint failures are reported on the matching BatchItem; the returned
// error is only set when ctx is cancelled before all blueprints are scored.
func ValidateBatch(ctx context.Context, blueprints []*types.SlideBlueprint, concurrency int) ([]BatchItem, error) {
	items := make([]BatchItem, len(blueprints))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, bp := range blueprints {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := ValidateSlideQuality(bp)
			items[i] = BatchItem{Index: i, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
