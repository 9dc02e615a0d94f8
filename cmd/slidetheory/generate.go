package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blakehenkel24-eng/slidetheory/internal/config"
	"github.com/blakehenkel24-eng/slidetheory/internal/db"
	"github.com/blakehenkel24-eng/slidetheory/internal/generation"
	"github.com/blakehenkel24-eng/slidetheory/internal/llm"
	"github.com/blakehenkel24-eng/slidetheory/internal/observability"
	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a scored slide from a brief",
	Long: `Asks Gemini for a slide blueprint built from the context and key takeaway, then scores it.
Values from --config are used for any flag not given on the command line.

Examples:
  slidetheory generate --context "Q3 sales review" --takeaway "Digital is driving growth"
  slidetheory generate -c brief.txt -t "Exit the Nordics" --audience board --out slide.json`,
	RunE: runGenerate,
}

var (
	generateContext  string
	generateTakeaway string
	generateType     string
	generateAudience string
	generateData     string
	generateMode     string
	generateOutput   string
	generateConfig   string
	generateTier     string
	generateAPIKey   string
	generateSave     bool
	generateVerbose  bool
)

// newLLMClient is replaced in tests
var newLLMClient = func(ctx context.Context, apiKey string) (llm.Client, error) {
	return llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
}

func init() {
	generateCmd.Flags().StringVarP(&generateContext, "context", "c", "", "Situation and background for the slide (required)")
	generateCmd.Flags().StringVarP(&generateTakeaway, "takeaway", "t", "", "The one message the audience must remember (required)")
	generateCmd.Flags().StringVar(&generateType, "type", "", "Slide layout or \"auto\"")
	generateCmd.Flags().StringVar(&generateAudience, "audience", "", "Target audience (auto, c-suite, board, investors, working-team, clients)")
	generateCmd.Flags().StringVar(&generateData, "data", "", "Supporting data points")
	generateCmd.Flags().StringVar(&generateMode, "mode", "", "Presentation mode (presentation or read)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Path to output slide JSON file (default stdout)")
	generateCmd.Flags().StringVar(&generateConfig, "config", "", "Path to JSON or YAML config file")
	generateCmd.Flags().StringVar(&generateTier, "tier", "", "Model tier (lite, standard, advanced)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Store the slide in the library at DATABASE_URL")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print progress and a readable assessment")

	if err := generateCmd.MarkFlagRequired("context"); err != nil {
		panic(fmt.Sprintf("failed to mark context flag as required: %v", err))
	}
	if err := generateCmd.MarkFlagRequired("takeaway"); err != nil {
		panic(fmt.Sprintf("failed to mark takeaway flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

// generateSettings resolves flag values over the optional config file
func generateSettings() (config.Config, error) {
	flags := config.Config{
		SlideType:        generateType,
		Audience:         generateAudience,
		PresentationMode: generateMode,
		ModelTier:        generateTier,
		APIKey:           generateAPIKey,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Verbose:          generateVerbose,
	}

	if generateConfig != "" {
		fileCfg, err := config.LoadConfig(generateConfig)
		if err != nil {
			return config.Config{}, err
		}
		if err := fileCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		flags = flags.MergeWithDefaults(*fileCfg)
		flags.Verbose = generateVerbose || fileCfg.Verbose
	}

	if flags.APIKey == "" {
		flags.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return flags, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	settings, err := generateSettings()
	if err != nil {
		return err
	}
	if settings.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	tier, err := llm.ParseTier(settings.ModelTier)
	if err != nil {
		return err
	}

	req := types.GenerateSlideRequest{
		Context:          generateContext,
		KeyTakeaway:      generateTakeaway,
		SlideType:        settings.SlideType,
		Audience:         settings.Audience,
		Data:             generateData,
		PresentationMode: types.PresentationMode(settings.PresentationMode),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := newLLMClient(ctx, settings.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	opts := []generation.Option{generation.WithTier(tier)}
	if settings.Verbose {
		opts = append(opts, generation.WithProgress(func(e generation.ProgressEvent) {
			printer.PrintStep(e.Step, e.Message)
		}))
	}

	slide, err := generation.New(client, opts...).Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate slide: %w", err)
	}

	if settings.Verbose {
		printer.PrintBlueprint(slide.Blueprint)
		printer.PrintAssessment(slide.QualityAssessment)
		printer.PrintIssues(slide.Issues)
	}
	if slide.UsedFallback {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: model output was unusable; the slide was built from the brief")
	}

	if generateSave {
		if err := saveSlide(ctx, settings.DatabaseURL, slide, req.Audience); err != nil {
			return err
		}
	}

	return writeJSON(cmd.OutOrStdout(), generateOutput, slide)
}

func saveSlide(ctx context.Context, databaseURL string, slide *types.SlideData, audience string) error {
	if databaseURL == "" {
		return fmt.Errorf("--save needs a database (set DATABASE_URL or database_url in the config file)")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}
	if _, err := database.SaveSlide(ctx, slide, audience); err != nil {
		return err
	}
	return nil
}
