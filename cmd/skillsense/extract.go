package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillsense/internal/config"
	"github.com/jonathan/skillsense/internal/extraction"
	"github.com/jonathan/skillsense/internal/logging"
	"github.com/jonathan/skillsense/internal/matching"
	"github.com/jonathan/skillsense/internal/store"
	"github.com/jonathan/skillsense/internal/taxonomy"
	"github.com/jonathan/skillsense/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a skill profile from a resume",
	Long:  "Extract a confidence-scored skill profile from resume text, optional structured fields, and an optional code-host profile, and persist it keyed by resume ID.",
	RunE:  runExtract,
}

var (
	extractConfigFile     string
	extractResumeFile     string
	extractStructuredFile string
	extractCodeHostFile   string
	extractTaxonomyFile   string
	extractResumeID       string
	extractDatabaseURL    string
	extractVerbose        bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractConfigFile, "config", "c", "", "Path to JSON config file")
	extractCmd.Flags().StringVarP(&extractResumeFile, "resume", "r", "", "Path to resume text file (required)")
	extractCmd.Flags().StringVar(&extractStructuredFile, "structured", "", "Path to structured resume fields JSON")
	extractCmd.Flags().StringVar(&extractCodeHostFile, "code-host", "", "Path to code host profile JSON")
	extractCmd.Flags().StringVarP(&extractTaxonomyFile, "taxonomy", "t", "", "Path to taxonomy mapping JSON file")
	extractCmd.Flags().StringVar(&extractResumeID, "resume-id", "", "Resume ID to key the profile by (default: new UUID)")
	extractCmd.Flags().StringVar(&extractDatabaseURL, "db-url", "", "Database URL (in-memory store when omitted)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Resume:      extractResumeFile,
		Structured:  extractStructuredFile,
		CodeHost:    extractCodeHostFile,
		Taxonomy:    extractTaxonomyFile,
		DatabaseURL: extractDatabaseURL,
		Verbose:     extractVerbose,
	}
	if extractConfigFile != "" {
		fileCfg, err := config.LoadConfig(extractConfigFile)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.Resume == "" {
		return fmt.Errorf("resume file is required (use --resume)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	resumeText, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	var structured *extraction.FieldNode
	if cfg.Structured != "" {
		data, err := os.ReadFile(cfg.Structured)
		if err != nil {
			return fmt.Errorf("failed to read structured fields file: %w", err)
		}
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse structured fields JSON: %w", err)
		}
		node := extraction.NodeFromJSON(raw)
		structured = &node
	}

	var codeHost *extraction.CodeHostProfile
	if cfg.CodeHost != "" {
		data, err := os.ReadFile(cfg.CodeHost)
		if err != nil {
			return fmt.Errorf("failed to read code host profile file: %w", err)
		}
		codeHost = &extraction.CodeHostProfile{}
		if err := json.Unmarshal(data, codeHost); err != nil {
			return fmt.Errorf("failed to parse code host profile JSON: %w", err)
		}
	}

	mapper := taxonomy.LoadMapper(cfg.Taxonomy, logger)
	var cache taxonomy.IndexCache
	matcher := matching.NewMatcher(cache.Get(mapper))
	extractor := extraction.New(mapper, matcher, logger)

	skills := extractor.Extract(string(resumeText), structured, codeHost)

	resumeID := extractResumeID
	if resumeID == "" {
		resumeID = uuid.NewString()
	}
	profile := &types.SkillProfile{
		ProfileID:       uuid.NewString(),
		ResumeID:        resumeID,
		Skills:          skills,
		PrivacySettings: types.DefaultPrivacySettings(),
	}

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeStore()

	saved, err := st.CreateProfile(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

// openStore returns a Postgres-backed store when a database URL is set and
// an in-memory store otherwise.
func openStore(ctx context.Context, databaseURL string) (store.Store, func(), error) {
	if databaseURL == "" {
		return store.NewMemoryStore(), func() {}, nil
	}
	pg, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pg, pg.Close, nil
}
