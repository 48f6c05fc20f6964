package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/pipeline"
	"github.com/jonathan/fastfolio/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the portfolio generation, upload and health endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	stack, err := pipeline.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer func() {
		if cerr := stack.Close(); cerr != nil {
			logger.Warn("failed to close pipeline", zap.Error(cerr))
		}
	}()

	caps := stack.Capabilities()
	logger.Info("capabilities",
		zap.Bool("model", caps[pipeline.CapabilityModel]),
		zap.Bool("ocr", caps[pipeline.CapabilityOCR]),
		zap.Bool("chrome", caps[pipeline.CapabilityChrome]),
		zap.Bool("latex", caps[pipeline.CapabilityLaTeX]))

	srv, err := server.New(server.Options{
		Config:       cfg,
		Runner:       stack.Orchestrator,
		Capabilities: stack.Capabilities,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
