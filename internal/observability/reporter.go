package observability

import (
	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/logging"
)

// Stage names used in failure records
const (
	StageExtraction      = "extraction"
	StageOCRPrecondition = "ocr_precondition"
	StageAnalysis        = "analysis"
	StageRendering       = "rendering"
)

// Failure is a structured record of a degraded or failed pipeline step.
// Advisory records describe a degraded-but-continuing step.
type Failure struct {
	Stage    string
	Path     string
	Kind     string
	Cause    error
	Advisory bool
}

// Reporter receives failure records from the pipeline stages
type Reporter interface {
	Report(f Failure)
}

// LogReporter writes failure records to a zap logger
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter creates a reporter backed by logger
func NewLogReporter(logger *zap.Logger) *LogReporter {
	logger = logging.OrNop(logger)
	return &LogReporter{logger: logger}
}

// Report logs the failure at warn level (advisories) or error level
func (r *LogReporter) Report(f Failure) {
	fields := []zap.Field{zap.String("stage", f.Stage)}
	if f.Path != "" {
		fields = append(fields, zap.String("path", f.Path))
	}
	if f.Kind != "" {
		fields = append(fields, zap.String("kind", f.Kind))
	}
	if f.Cause != nil {
		fields = append(fields, zap.Error(f.Cause))
	}

	if f.Advisory {
		r.logger.Warn("pipeline advisory", fields...)
		return
	}
	r.logger.Error("pipeline step failed", fields...)
}
