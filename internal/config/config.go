// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blakehenkel24-eng/slidetheory/internal/llm"
	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Generation defaults
	SlideType        string `json:"slide_type,omitempty" yaml:"slide_type,omitempty"`               // Layout or "auto"
	Audience         string `json:"audience,omitempty" yaml:"audience,omitempty"`                   // Target audience
	PresentationMode string `json:"presentation_mode,omitempty" yaml:"presentation_mode,omitempty"` // "presentation" or "read"
	ModelTier        string `json:"model_tier,omitempty" yaml:"model_tier,omitempty"`               // lite, standard or advanced

	// Behavior
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`           // Gemini API key
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL URL for the slide library
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`                 // HTTP port for serve
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`           // Print detailed output
}

// LoadConfig loads configuration from a file.
// Files ending in .yaml or .yml are parsed as YAML; everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required values are checked by the CLI after merging with flags.
func (c *Config) Validate() error {
	if c.SlideType != "" && c.SlideType != types.SlideTypeAuto && !types.Layout(c.SlideType).IsStandard() {
		return fmt.Errorf("config error: unknown 'slide_type' %q", c.SlideType)
	}
	if c.Audience != "" && !slices.Contains(types.Audiences(), c.Audience) {
		return fmt.Errorf("config error: unknown 'audience' %q", c.Audience)
	}
	switch types.PresentationMode(c.PresentationMode) {
	case "", types.ModePresentation, types.ModeRead:
	default:
		return fmt.Errorf("config error: unknown 'presentation_mode' %q", c.PresentationMode)
	}
	if _, err := llm.ParseTier(c.ModelTier); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.SlideType == "" {
		result.SlideType = defaults.SlideType
	}
	if result.Audience == "" {
		result.Audience = defaults.Audience
	}
	if result.PresentationMode == "" {
		result.PresentationMode = defaults.PresentationMode
	}
	if result.ModelTier == "" {
		result.ModelTier = defaults.ModelTier
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
