// Package pipeline composes extraction, analysis and rendering for one request.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/logging"
	"github.com/jonathan/fastfolio/internal/observability"
	"github.com/jonathan/fastfolio/internal/rendering"
	"github.com/jonathan/fastfolio/internal/types"
)

// ContentTypePDF is the content type of every artifact
const ContentTypePDF = "application/pdf"

// Extractor produces the documents handed to analysis
type Extractor interface {
	Extract(ctx context.Context, certs []types.CertificateRef) []types.ExtractedDocument
}

// Analyzer produces the shared AnalysisResult
type Analyzer interface {
	Analyze(ctx context.Context, profile *types.StudentProfile, docs []types.ExtractedDocument, atsFriendly bool) (*types.AnalysisResult, error)
}

// Renderer produces PDF bytes for a variant
type Renderer interface {
	Render(ctx context.Context, variant rendering.Variant, profile *types.StudentProfile, result *types.AnalysisResult) ([]byte, error)
}

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Mode    Mode   `json:"mode"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when a run reaches a new step
type ProgressCallback func(event ProgressEvent)

// Artifact is the result of one successful run
type Artifact struct {
	Mode        Mode
	Filename    string
	ContentType string
	Bytes       []byte
	Documents   []types.ExtractedDocument
	Result      *types.AnalysisResult
}

// Orchestrator owns no per-request state; it is safe for concurrent use
type Orchestrator struct {
	extractor  Extractor
	analyzer   Analyzer
	renderer   Renderer
	logger     *zap.Logger
	reporter   observability.Reporter
	onProgress ProgressCallback
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithProgress registers a progress callback
func WithProgress(cb ProgressCallback) Option {
	return func(o *Orchestrator) { o.onProgress = cb }
}

// WithReporter sets the reporter that receives render failures
func WithReporter(r observability.Reporter) Option {
	return func(o *Orchestrator) { o.reporter = r }
}

// New creates an orchestrator over the three stages
func New(extractor Extractor, analyzer Analyzer, renderer Renderer, logger *zap.Logger, opts ...Option) *Orchestrator {
	logger = logging.OrNop(logger)
	o := &Orchestrator{
		extractor: extractor,
		analyzer:  analyzer,
		renderer:  renderer,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.reporter == nil {
		o.reporter = observability.NewLogReporter(logger)
	}
	return o
}

func (o *Orchestrator) emit(mode Mode, step, message string, content any) {
	if o.onProgress != nil {
		o.onProgress(ProgressEvent{Step: step, Mode: mode, Message: message, Content: content})
	}
}

// Run validates the profile, extracts certificate text, analyzes and renders.
// Extraction and parse failures degrade to empty or fallback data; only
// validation, configuration, model and render failures are returned.
func (o *Orchestrator) Run(ctx context.Context, mode Mode, profile *types.StudentProfile) (*Artifact, error) {
	def, err := Lookup(mode)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &ValidationError{Message: "profile is required"}
	}
	if err := profile.Validate(); err != nil {
		return nil, &ValidationError{Message: "invalid profile", Cause: err}
	}

	start := time.Now()
	log := o.logger.With(zap.String("mode", string(mode)))

	// Step 1: extract certificate text
	o.emit(mode, "extract", fmt.Sprintf("Extracting %d certificate(s)", len(profile.Certificates)), nil)
	docs := o.extractor.Extract(ctx, profile.Certificates)
	log.Debug("extraction complete",
		zap.Int("certificates", len(profile.Certificates)),
		zap.Int("documents", len(docs)))

	// Step 2: analyze
	o.emit(mode, "analyze", "Analyzing profile", nil)
	result, err := o.analyzer.Analyze(ctx, profile, docs, def.ATSFriendly)
	if err != nil {
		log.Error("analysis failed", zap.Error(err))
		return nil, err
	}
	o.emit(mode, "analyze", "Analysis complete", result)

	// Step 3: render
	o.emit(mode, "render", fmt.Sprintf("Rendering %s document", def.Variant), nil)
	pdf, err := o.renderer.Render(ctx, def.Variant, profile, result)
	if err != nil {
		o.reporter.Report(observability.Failure{
			Stage: observability.StageRendering,
			Kind:  string(def.Variant),
			Cause: err,
		})
		return nil, err
	}

	log.Info("artifact generated",
		zap.String("variant", string(def.Variant)),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))
	o.emit(mode, "done", fmt.Sprintf("Generated %s", def.Filename), nil)

	return &Artifact{
		Mode:        mode,
		Filename:    def.Filename,
		ContentType: ContentTypePDF,
		Bytes:       pdf,
		Documents:   docs,
		Result:      result,
	}, nil
}
