// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Taxonomy   string `json:"taxonomy,omitempty"`   // Path to taxonomy mapping JSON file
	Resume     string `json:"resume,omitempty"`     // Path to resume text file
	Structured string `json:"structured,omitempty"` // Path to structured resume fields JSON
	CodeHost   string `json:"code_host,omitempty"`  // Path to code host profile JSON

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for embeddings
	EmbedModel  string `json:"embed_model,omitempty"`  // Embedding model name
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	TopK        int    `json:"top_k,omitempty"`        // Maximum matched skills returned per job match
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Taxonomy != "" {
		if _, err := os.Stat(c.Taxonomy); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.Taxonomy)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Taxonomy == "" {
		result.Taxonomy = defaults.Taxonomy
	}
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Structured == "" {
		result.Structured = defaults.Structured
	}
	if result.CodeHost == "" {
		result.CodeHost = defaults.CodeHost
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbedModel == "" {
		result.EmbedModel = defaults.EmbedModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
