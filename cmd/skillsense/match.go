package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillsense/internal/config"
	"github.com/jonathan/skillsense/internal/embedding"
	"github.com/jonathan/skillsense/internal/jobmatch"
	"github.com/jonathan/skillsense/internal/logging"
	"github.com/jonathan/skillsense/internal/taxonomy"
	"github.com/jonathan/skillsense/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a skill profile against a job description",
	Long:  "Match a stored or file-based skill profile against a job description, reporting matched skills, missing skills, and recommendations.",
	RunE:  runMatch,
}

var (
	matchConfigFile   string
	matchJobFile      string
	matchProfileID    string
	matchProfileFile  string
	matchTaxonomyFile string
	matchTopK         int
	matchAPIKey       string
	matchEmbedModel   string
	matchDatabaseURL  string
	matchVerbose      bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchConfigFile, "config", "c", "", "Path to JSON config file")
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to job description text file (required)")
	matchCmd.Flags().StringVar(&matchProfileID, "profile-id", "", "Profile ID to load from the database")
	matchCmd.Flags().StringVar(&matchProfileFile, "profile", "", "Path to skill profile JSON file")
	matchCmd.Flags().StringVarP(&matchTaxonomyFile, "taxonomy", "t", "", "Path to taxonomy mapping JSON file")
	matchCmd.Flags().IntVar(&matchTopK, "top-k", 0, "Maximum matched skills to return")
	matchCmd.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	matchCmd.Flags().StringVar(&matchEmbedModel, "embed-model", "", "Embedding model name")
	matchCmd.Flags().StringVar(&matchDatabaseURL, "db-url", "", "Database URL (required with --profile-id)")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Taxonomy:    matchTaxonomyFile,
		APIKey:      matchAPIKey,
		EmbedModel:  matchEmbedModel,
		DatabaseURL: matchDatabaseURL,
		TopK:        matchTopK,
		Verbose:     matchVerbose,
	}
	if matchConfigFile != "" {
		fileCfg, err := config.LoadConfig(matchConfigFile)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = embedding.DefaultModel
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if matchJobFile == "" {
		return fmt.Errorf("job description file is required (use --job)")
	}
	if matchProfileID != "" && matchProfileFile != "" {
		return fmt.Errorf("cannot use --profile-id with --profile")
	}
	if matchProfileID == "" && matchProfileFile == "" {
		return fmt.Errorf("must provide either --profile-id or --profile")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	jobText, err := os.ReadFile(matchJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description file: %w", err)
	}

	ctx := context.Background()

	var profile *types.SkillProfile
	if matchProfileFile != "" {
		data, err := os.ReadFile(matchProfileFile)
		if err != nil {
			return fmt.Errorf("failed to read profile file: %w", err)
		}
		profile = &types.SkillProfile{}
		if err := json.Unmarshal(data, profile); err != nil {
			return fmt.Errorf("failed to parse profile JSON: %w", err)
		}
	} else {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL required when using --profile-id")
		}
		st, closeStore, err := openStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer closeStore()

		profile, err = st.GetProfile(ctx, matchProfileID)
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}
		if profile == nil {
			return fmt.Errorf("profile not found: %s", matchProfileID)
		}
	}

	provider, err := embedding.NewGeminiProvider(ctx, cfg.APIKey, cfg.EmbedModel)
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}
	defer func() { _ = provider.Close() }()

	mapper := taxonomy.LoadMapper(cfg.Taxonomy, logger)
	matcher := jobmatch.New(provider, mapper, logger)

	result, err := matcher.Match(ctx, profile, string(jobText), cfg.TopK)
	if err != nil {
		return fmt.Errorf("failed to match job: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
