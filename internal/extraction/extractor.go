// Package extraction reads plain text out of uploaded certificates (PDF, Word, images, text).
package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fastfolio/internal/logging"
	"github.com/jonathan/fastfolio/internal/observability"
	"github.com/jonathan/fastfolio/internal/types"
)

// DefaultWorkers bounds concurrent per-file extraction
const DefaultWorkers = 4

// HandlerFunc extracts text from the file at path
type HandlerFunc func(ctx context.Context, path string) (string, error)

// Options configures an Extractor
type Options struct {
	Workers   int
	OCRBinary string
	Logger    *zap.Logger
	Reporter  observability.Reporter
}

// Extractor dispatches certificates to format handlers by declared type
type Extractor struct {
	handlers map[types.CertificateType]HandlerFunc
	workers  int
	ocr      *OCR
	logger   *zap.Logger
	reporter observability.Reporter
}

// New creates an Extractor with the built-in pdf, doc, image and txt handlers
func New(opts Options) *Extractor {
	logger := opts.Logger
	logger = logging.OrNop(logger)
	reporter := opts.Reporter
	if reporter == nil {
		reporter = observability.NewLogReporter(logger)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	ocr := NewOCR(opts.OCRBinary)
	return &Extractor{
		handlers: map[types.CertificateType]HandlerFunc{
			types.CertificatePDF:   ExtractPDF,
			types.CertificateDoc:   ExtractDOCX,
			types.CertificateImage: ocr.Extract,
			types.CertificateText:  ExtractText,
		},
		workers:  workers,
		ocr:      ocr,
		logger:   logger,
		reporter: reporter,
	}
}

// Handle replaces the handler for a certificate type
func (e *Extractor) Handle(t types.CertificateType, fn HandlerFunc) {
	e.handlers[t] = fn
}

// OCRAvailable reports whether the OCR binary can be found on this host
func (e *Extractor) OCRAvailable() bool {
	return e.ocr.Available()
}

// Extract returns one document per certificate that did not fail, in input order.
// Unrecognized types are kept with empty content. It never returns an error.
func (e *Extractor) Extract(ctx context.Context, certs []types.CertificateRef) []types.ExtractedDocument {
	return types.Documents(e.ExtractOutcomes(ctx, certs))
}

// ExtractOutcomes extracts every certificate concurrently and returns one
// tagged outcome per input, in input order. Failures are reported, not returned.
func (e *Extractor) ExtractOutcomes(ctx context.Context, certs []types.CertificateRef) []types.Outcome {
	outcomes := make([]types.Outcome, len(certs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, cert := range certs {
		g.Go(func() error {
			outcomes[i] = e.extractOne(gctx, cert)
			return nil
		})
	}
	_ = g.Wait()

	e.report(outcomes)
	return outcomes
}

func (e *Extractor) extractOne(ctx context.Context, cert types.CertificateRef) (outcome types.Outcome) {
	outcome.Ref = cert

	handler, ok := e.handlers[cert.Type]
	if !ok {
		outcome.Status = types.OutcomeSkipped
		outcome.Reason = fmt.Sprintf("unrecognized certificate type %q", cert.Type)
		e.logger.Debug("skipping certificate", zap.String("path", cert.Path), zap.String("type", string(cert.Type)))
		return outcome
	}

	if cert.Type == types.CertificateDoc && strings.HasSuffix(strings.ToLower(cert.Path), ".doc") {
		e.reporter.Report(observability.Failure{
			Stage:    observability.StageExtraction,
			Path:     cert.Path,
			Kind:     string(cert.Type),
			Cause:    errors.New("legacy .doc files are not fully supported; convert to .docx for better results"),
			Advisory: true,
		})
	}

	// Third-party parsers may panic on corrupt input
	defer func() {
		if r := recover(); r != nil {
			outcome.Status = types.OutcomeFailed
			outcome.Text = ""
			outcome.Err = fmt.Errorf("panic while extracting %s: %v", cert.Path, r)
			outcome.Reason = outcome.Err.Error()
		}
	}()

	text, err := handler(ctx, cert.Path)
	if err != nil {
		outcome.Status = types.OutcomeFailed
		outcome.Err = err
		outcome.Reason = err.Error()
		return outcome
	}

	outcome.Status = types.OutcomeExtracted
	outcome.Text = text
	return outcome
}

// report sends one record per failed outcome. A missing OCR binary is
// additionally reported once as a precondition failure; the per-image
// records for it are advisories so the precondition record stands out.
func (e *Extractor) report(outcomes []types.Outcome) {
	ocrReported := false
	for _, o := range outcomes {
		if o.Status != types.OutcomeFailed {
			continue
		}

		var unavailable *UnavailableError
		ocrMissing := errors.As(o.Err, &unavailable)
		if ocrMissing && !ocrReported {
			e.reporter.Report(observability.Failure{
				Stage: observability.StageOCRPrecondition,
				Path:  o.Ref.Path,
				Kind:  string(o.Ref.Type),
				Cause: o.Err,
			})
			ocrReported = true
		}

		e.reporter.Report(observability.Failure{
			Stage:    observability.StageExtraction,
			Path:     o.Ref.Path,
			Kind:     string(o.Ref.Type),
			Cause:    o.Err,
			Advisory: ocrMissing,
		})
	}
}
