package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blakehenkel24-eng/slidetheory/internal/observability"
	"github.com/blakehenkel24-eng/slidetheory/internal/quality"
	"github.com/blakehenkel24-eng/slidetheory/internal/schemas"
	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Score slide blueprints against consulting standards",
	Long: `Reads slide blueprint JSON files, checks each against the blueprint contract and scores them.
A single --in writes its assessment and issues as JSON; several --in files are scored
concurrently and written as a JSON array of {file, assessment, issues}. Output goes to
--out, or to stdout.

With --strict the command fails when any slide is not executive-ready.`,
	RunE: runValidate,
}

var (
	validateInputs      []string
	validateOutput      string
	validateVerbose     bool
	validateStrict      bool
	validateConcurrency int
)

func init() {
	validateCmd.Flags().StringSliceVarP(&validateInputs, "in", "i", nil, "Path to SlideBlueprint JSON file; repeat or comma-separate for several (required)")
	validateCmd.Flags().StringVarP(&validateOutput, "out", "o", "", "Path to output assessment JSON file (default stdout)")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print a readable assessment")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail unless every slide is executive-ready")
	validateCmd.Flags().IntVar(&validateConcurrency, "concurrency", 4, "Blueprints scored in parallel")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

// fileResult is one entry of the multi-file output
type fileResult struct {
	File string `json:"file"`
	quality.Result
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if len(validateInputs) == 0 {
		return fmt.Errorf("at least one --in file is required")
	}

	blueprints := make([]*types.SlideBlueprint, len(validateInputs))
	for i, path := range validateInputs {
		bp, err := readBlueprint(cmd, path)
		if err != nil {
			if len(validateInputs) > 1 {
				return fmt.Errorf("%s: %w", path, err)
			}
			return err
		}
		blueprints[i] = bp
	}

	items, err := quality.ValidateBatch(cmd.Context(), blueprints, validateConcurrency)
	if err != nil {
		return fmt.Errorf("scoring interrupted: %w", err)
	}

	results := make([]fileResult, len(items))
	for _, item := range items {
		if item.Err != nil {
			if len(items) > 1 {
				return fmt.Errorf("%s: %w", validateInputs[item.Index], item.Err)
			}
			return item.Err
		}
		results[item.Index] = fileResult{File: validateInputs[item.Index], Result: *item.Result}
	}

	for _, r := range results {
		// The output contract is checked as a guard; a mismatch is reported but not fatal
		if encoded, err := json.Marshal(r.Result); err == nil {
			if err := schemas.ValidateResult(string(encoded)); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: assessment does not validate against its contract: %v\n", r.File, err)
			}
		}
	}

	// Human-readable output goes to stderr when the JSON itself is on stdout
	human := cmd.OutOrStdout()
	if validateOutput == "" {
		human = cmd.ErrOrStderr()
	}

	if validateVerbose {
		printer := observability.NewPrinter(human)
		for i, r := range results {
			printer.PrintBlueprint(blueprints[i])
			printer.PrintAssessment(&r.Assessment)
			printer.PrintIssues(r.Issues)
		}
	}

	var payload any = results
	if len(results) == 1 {
		payload = results[0].Result
	}
	if err := writeJSON(cmd.OutOrStdout(), validateOutput, payload); err != nil {
		return err
	}

	var notReady []string
	for _, r := range results {
		label := quality.QualityLabel(r.Assessment.Overall)
		prefix := ""
		if len(results) > 1 {
			prefix = r.File + ": "
		}
		fmt.Fprintf(human, "%sOverall: %.1f (%s), %d issue(s)\n", prefix, r.Assessment.Overall, label.Text, len(r.Issues))
		if !r.Assessment.IsExecutiveReady {
			notReady = append(notReady, r.File)
		}
	}
	if validateOutput != "" {
		fmt.Fprintf(human, "Output: %s\n", validateOutput)
	}

	if validateStrict && len(notReady) > 0 {
		if len(results) == 1 {
			return fmt.Errorf("slide is not executive-ready: %s", quality.UserFeedback(results[0].Assessment))
		}
		return fmt.Errorf("%d of %d slides are not executive-ready: %s", len(notReady), len(results), strings.Join(notReady, ", "))
	}
	return nil
}

// readBlueprint loads a blueprint file after checking it against the contract
func readBlueprint(cmd *cobra.Command, path string) (*types.SlideBlueprint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint file: %w", err)
	}

	if err := schemas.ValidateBlueprint(string(content)); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprint(cmd.ErrOrStderr(), ve.Error())
			return nil, fmt.Errorf("blueprint does not match the contract")
		}
		return nil, fmt.Errorf("blueprint is not valid JSON: %w", err)
	}

	var bp types.SlideBlueprint
	if err := json.Unmarshal(content, &bp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blueprint JSON: %w", err)
	}
	return &bp, nil
}
