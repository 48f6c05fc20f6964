// Package main provides the fastfolio command: the HTTP API server plus local generation tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/config"
	"github.com/jonathan/fastfolio/internal/logging"
)

var (
	configPath string
	verbose    bool

	// logger is built in PersistentPreRunE and synced in PersistentPostRun
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fastfolio",
	Short: "Fastfolio portfolio generator",
	Long:  "Fastfolio turns a student profile and uploaded certificates into portfolio, analysis, ATS and LaTeX PDF documents.",

	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := logging.New(logging.Options{
			Verbose: verbose,
			// The server logs JSON; local commands log for humans
			Development: cmd.Name() != serveCmd.Name(),
		})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and progress output")
}

// resolveConfig loads the config file (if any) merged with the environment
func resolveConfig() (config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Verbose = cfg.Verbose || verbose
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
