package pipeline

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/analysis"
	"github.com/jonathan/fastfolio/internal/browser"
	"github.com/jonathan/fastfolio/internal/config"
	"github.com/jonathan/fastfolio/internal/extraction"
	"github.com/jonathan/fastfolio/internal/llm"
	"github.com/jonathan/fastfolio/internal/logging"
	"github.com/jonathan/fastfolio/internal/observability"
	"github.com/jonathan/fastfolio/internal/rendering"
)

// Capability names reported by Stack.Capabilities
const (
	CapabilityModel  = "model"
	CapabilityOCR    = "ocr"
	CapabilityChrome = "chrome"
	CapabilityLaTeX  = "latex"
)

// Stack is the set of components wired from a resolved configuration
type Stack struct {
	Orchestrator *Orchestrator
	Extractor    *extraction.Extractor
	Analyzer     *analysis.Engine
	Printer      *browser.Printer
	Compiler     *rendering.PDFLaTeX

	client llm.Client
}

// Build wires every stage from cfg. A missing model credential is not an
// error here: the analyzer is left unconfigured and each request fails with
// a ConfigurationError instead.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...Option) (*Stack, error) {
	logger = logging.OrNop(logger)
	reporter := observability.NewLogReporter(logger)

	tier := llm.TierStandard
	if cfg.ModelTier != "" {
		tier = llm.ModelTier(cfg.ModelTier)
	}

	var client llm.Client
	if credential := cfg.Credential(); credential != "" {
		c, err := llm.NewClient(ctx, llm.ConfigFor(cfg.Provider, cfg.Model, tier), credential)
		if err != nil {
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
		client = c
	} else {
		logger.Warn("no model credential configured; generation requests will fail",
			zap.String("provider", cfg.Provider))
	}

	if cfg.ScratchDir != "" {
		if err := os.MkdirAll(cfg.ScratchDir, 0o755); err != nil {
			closeClient(client, logger)
			return nil, fmt.Errorf("failed to create scratch directory: %w", err)
		}
	}

	extractor := extraction.New(extraction.Options{
		Workers:   cfg.ExtractionWorkers,
		OCRBinary: cfg.OCRBinary,
		Logger:    logger.Named("extraction"),
		Reporter:  reporter,
	})
	analyzer := analysis.NewEngine(client, logger.Named("analysis"),
		analysis.WithReporter(reporter),
		analysis.WithTier(tier))

	printer := browser.NewPrinter(cfg.ChromePath, logger.Named("browser"))
	compiler := rendering.NewPDFLaTeX(cfg.LaTeXCompiler)

	html, err := rendering.NewHTMLRenderer(printer, logger.Named("rendering"))
	if err != nil {
		closeClient(client, logger)
		return nil, err
	}
	latex, err := rendering.NewLaTeXRenderer(compiler, cfg.ScratchDir, logger.Named("rendering"))
	if err != nil {
		closeClient(client, logger)
		return nil, err
	}

	orchestrator := New(extractor, analyzer, rendering.NewEngine(html, latex), logger,
		append([]Option{WithReporter(reporter)}, opts...)...)

	return &Stack{
		Orchestrator: orchestrator,
		Extractor:    extractor,
		Analyzer:     analyzer,
		Printer:      printer,
		Compiler:     compiler,
		client:       client,
	}, nil
}

// Capabilities reports which external collaborators are usable on this host
func (s *Stack) Capabilities() map[string]bool {
	return map[string]bool{
		CapabilityModel:  s.Analyzer.Configured(),
		CapabilityOCR:    s.Extractor.OCRAvailable(),
		CapabilityChrome: s.Printer.Available(),
		CapabilityLaTeX:  s.Compiler.Available(),
	}
}

// Close releases the model client
func (s *Stack) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func closeClient(client llm.Client, logger *zap.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.Warn("failed to close model client", zap.Error(err))
	}
}
