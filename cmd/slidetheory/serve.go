package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/blakehenkel24-eng/slidetheory/internal/config"
	"github.com/blakehenkel24-eng/slidetheory/internal/db"
	"github.com/blakehenkel24-eng/slidetheory/internal/generation"
	"github.com/blakehenkel24-eng/slidetheory/internal/llm"
	"github.com/blakehenkel24-eng/slidetheory/internal/server"
	"github.com/blakehenkel24-eng/slidetheory/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes slide generation, scoring and the slide library.
Settings come from SLIDETHEORY_* environment variables; the slide library is enabled when DATABASE_URL is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides SLIDETHEORY_PORT)")
	rootCmd.AddCommand(serveCmd)
}

// serverConfig builds the HTTP settings from the environment and the --port flag
func serverConfig(env config.ServerEnv, port int) (server.Config, error) {
	if port == 0 {
		port = env.Port
	}
	if port < 1 || port > 65535 {
		return server.Config{}, fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return server.Config{
		Port:         port,
		CORSOrigin:   env.CORSOrigin,
		ReadTimeout:  env.ReadTimeout,
		WriteTimeout: env.WriteTimeout,
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadServerEnv()
	if err != nil {
		return err
	}
	if env.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	cfg, err := serverConfig(env, servePort)
	if err != nil {
		return err
	}
	tier, err := llm.ParseTier(env.ModelTier)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := newLLMClient(ctx, env.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var library server.SlideLibrary
	if env.DatabaseURL != "" {
		database, err := db.Connect(ctx, env.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return err
		}
		library = database
		log.Printf("[library] slide library enabled")
	} else {
		log.Printf("[library] DATABASE_URL not set; library endpoints disabled")
	}

	limitCfg, err := ratelimit.LoadConfig()
	if err != nil {
		return err
	}

	srv := server.New(cfg, generation.New(client, generation.WithTier(tier)), library, ratelimit.NewLimiter(limitCfg))
	return srv.Start()
}
