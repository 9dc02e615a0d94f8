// Package main provides the slidetheory command-line tool: slide scoring, generation and the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slidetheory",
	Short: "Consulting-grade slide generation and quality scoring",
	Long: "SlideTheory turns a brief into a consulting slide blueprint and scores blueprints on six dimensions: " +
		"action title, MECE structure, pyramid principle, data quality, so-what and visual clarity.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
