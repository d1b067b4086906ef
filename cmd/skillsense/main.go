// Package main provides the entry point for the SkillSense CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillsense",
	Short: "Taxonomy-driven skill extraction and job matching",
	Long:  "SkillSense extracts skills from resume text, structured fields, and code-host profiles against a taxonomy, and matches the resulting skill profiles to job descriptions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
