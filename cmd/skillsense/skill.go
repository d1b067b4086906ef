package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillsense/internal/lifecycle"
	"github.com/jonathan/skillsense/internal/logging"
	"github.com/jonathan/skillsense/internal/types"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Accept, reject, or edit a skill in a stored profile",
	Long:  "Apply a lifecycle action to a skill in a stored profile. Actions never change the skill's confidence or evidence; every transition is recorded in the audit log.",
	RunE:  runSkill,
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List the audit history of a profile",
	RunE:  runAudit,
}

var (
	skillProfileID      string
	skillName           string
	skillAction         string
	skillEditedName     string
	skillEditedCategory string
	skillDatabaseURL    string
	skillVerbose        bool

	auditProfileID   string
	auditDatabaseURL string
)

func init() {
	skillCmd.Flags().StringVar(&skillProfileID, "profile-id", "", "Profile ID (required)")
	skillCmd.Flags().StringVar(&skillName, "skill", "", "Skill name, case-insensitive (required)")
	skillCmd.Flags().StringVar(&skillAction, "action", "", "Action: accept, reject, or edit (required)")
	skillCmd.Flags().StringVar(&skillEditedName, "name", "", "Replacement display name (edit only)")
	skillCmd.Flags().StringVar(&skillEditedCategory, "category", "", "Replacement category (edit only)")
	skillCmd.Flags().StringVar(&skillDatabaseURL, "db-url", "", "Database URL")
	skillCmd.Flags().BoolVarP(&skillVerbose, "verbose", "v", false, "Print detailed debug information")

	auditCmd.Flags().StringVar(&auditProfileID, "profile-id", "", "Profile ID (required)")
	auditCmd.Flags().StringVar(&auditDatabaseURL, "db-url", "", "Database URL")

	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(auditCmd)
}

func runSkill(_ *cobra.Command, _ []string) error {
	if skillProfileID == "" || skillName == "" || skillAction == "" {
		return fmt.Errorf("--profile-id, --skill, and --action are required")
	}
	databaseURL := skillDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	logger, err := logging.New(skillVerbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer closeStore()

	service := lifecycle.New(st, logger)
	result := service.Apply(ctx, types.ActionRequest{
		ProfileID:      skillProfileID,
		SkillName:      skillName,
		Action:         skillAction,
		EditedName:     skillEditedName,
		EditedCategory: skillEditedCategory,
	})

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))

	if !result.Success {
		return fmt.Errorf("skill action failed: %s", result.Message)
	}
	return nil
}

func runAudit(_ *cobra.Command, _ []string) error {
	if auditProfileID == "" {
		return fmt.Errorf("--profile-id is required")
	}
	databaseURL := auditDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := st.ListAudit(ctx, auditProfileID)
	if err != nil {
		return fmt.Errorf("failed to list audit records: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
