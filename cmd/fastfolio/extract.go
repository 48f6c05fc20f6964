package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/fastfolio/internal/extraction"
	"github.com/jonathan/fastfolio/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract certificate text for a profile",
	Long:  "Reads every certificate listed in a profile and prints the per-file outcome as JSON. No model call is made.",
	RunE:  runExtract,
}

var (
	extractProfileFile string
)

func init() {
	extractCmd.Flags().StringVarP(&extractProfileFile, "profile", "p", "", "Path to StudentProfile JSON file (required)")

	_ = extractCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	profile, err := loadProfile(extractProfileFile)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	extractor := extraction.New(extraction.Options{
		Workers:   cfg.ExtractionWorkers,
		OCRBinary: cfg.OCRBinary,
		Logger:    logger.Named("extraction"),
	})
	outcomes := extractor.ExtractOutcomes(cmd.Context(), profile.Certificates)

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintOutcomes(outcomes)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outcomes); err != nil {
		return fmt.Errorf("failed to encode outcomes: %w", err)
	}
	return nil
}
