// Package analysis turns a student profile and extracted certificate text into
// a structured AnalysisResult using a single model call.
package analysis

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/llm"
	"github.com/jonathan/fastfolio/internal/logging"
	"github.com/jonathan/fastfolio/internal/observability"
	"github.com/jonathan/fastfolio/internal/types"
)

// Engine runs the analysis step. A nil client means no credential is configured.
type Engine struct {
	client   llm.Client
	tier     llm.ModelTier
	logger   *zap.Logger
	reporter observability.Reporter
}

// Option configures an Engine
type Option func(*Engine)

// WithTier selects the model tier (default llm.TierStandard)
func WithTier(tier llm.ModelTier) Option {
	return func(e *Engine) { e.tier = tier }
}

// WithReporter sets the reporter that receives parse failures
func WithReporter(r observability.Reporter) Option {
	return func(e *Engine) { e.reporter = r }
}

// NewEngine creates an analysis engine around client
func NewEngine(client llm.Client, logger *zap.Logger, opts ...Option) *Engine {
	logger = logging.OrNop(logger)
	e := &Engine{
		client: client,
		tier:   llm.TierStandard,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.reporter == nil {
		e.reporter = observability.NewLogReporter(logger)
	}
	return e
}

// Configured reports whether a model client is available
func (e *Engine) Configured() bool {
	return e.client != nil
}

// Analyze builds the prompt, calls the model exactly once and parses the reply.
// Parse failures degrade to the fallback result; only a missing credential
// (*ConfigurationError) or a failed model call (*ModelError) are returned.
func (e *Engine) Analyze(ctx context.Context, profile *types.StudentProfile, docs []types.ExtractedDocument, atsFriendly bool) (*types.AnalysisResult, error) {
	if e.client == nil {
		return nil, &ConfigurationError{Message: "no model API key is configured"}
	}

	prompt := BuildPrompt(profile, docs, atsFriendly)

	start := time.Now()
	reply, err := e.client.GenerateContent(ctx, prompt, e.tier)
	if err != nil {
		return nil, &ModelError{Message: "failed to generate analysis", Cause: err}
	}
	e.logger.Debug("model reply received",
		zap.String("model", e.client.GetModel(e.tier)),
		zap.Bool("ats_friendly", atsFriendly),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("reply_chars", len(reply)),
		zap.Duration("duration", time.Since(start)))

	result, err := ParseResponse(reply)
	if err != nil {
		var parseErr *ParseError
		kind := ""
		if errors.As(err, &parseErr) {
			kind = string(parseErr.Kind)
		}
		e.reporter.Report(observability.Failure{
			Stage:    observability.StageAnalysis,
			Kind:     kind,
			Cause:    err,
			Advisory: true,
		})
	}

	return result, nil
}
