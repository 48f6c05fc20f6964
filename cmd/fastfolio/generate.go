package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/observability"
	"github.com/jonathan/fastfolio/internal/pipeline"
	"github.com/jonathan/fastfolio/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a PDF from a profile file",
	Long:  "Runs extraction, analysis and rendering in-process for one mode and writes the resulting PDF.",
	RunE:  runGenerate,
}

var (
	generateProfileFile string
	generateMode        string
	generateOutputFile  string
)

func init() {
	generateCmd.Flags().StringVarP(&generateProfileFile, "profile", "p", "", "Path to StudentProfile JSON file (required)")
	generateCmd.Flags().StringVarP(&generateMode, "mode", "m", string(pipeline.ModePortfolio), "Output mode: portfolio, analysis, ats or latex")
	generateCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "", "Output PDF path (defaults to the mode's file name)")

	_ = generateCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	mode, err := pipeline.ParseMode(generateMode)
	if err != nil {
		return err
	}
	profile, err := loadProfile(generateProfileFile)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	printer := observability.NewPrinter(stderr)

	var opts []pipeline.Option
	if cfg.Verbose {
		opts = append(opts, pipeline.WithProgress(func(event pipeline.ProgressEvent) {
			fmt.Fprintf(stderr, "[%s] %s\n", event.Step, event.Message)
			if result, ok := event.Content.(*types.AnalysisResult); ok {
				printer.PrintAnalysis(result)
			}
		}))
	}

	stack, err := pipeline.Build(cmd.Context(), cfg, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer func() {
		if cerr := stack.Close(); cerr != nil {
			logger.Warn("failed to close pipeline", zap.Error(cerr))
		}
	}()

	artifact, err := stack.Orchestrator.Run(cmd.Context(), mode, profile)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	outPath := generateOutputFile
	if outPath == "" {
		outPath = artifact.Filename
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, artifact.Bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", outPath, len(artifact.Bytes))
	return nil
}
