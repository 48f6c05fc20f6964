package rendering

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"math"

	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/logging"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PDFPrinter turns rendered HTML into PDF bytes
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// htmlTemplates maps each HTML variant to its embedded template
var htmlTemplates = map[Variant]string{
	VariantStandard: "standard.html.tmpl",
	VariantAnalysis: "analysis.html.tmpl",
	VariantATS:      "ats.html.tmpl",
}

// HTMLRenderer renders the standard, analysis and ats variants
type HTMLRenderer struct {
	templates *template.Template
	printer   PDFPrinter
	logger    *zap.Logger
}

// NewHTMLRenderer parses the embedded HTML templates
func NewHTMLRenderer(printer PDFPrinter, logger *zap.Logger) (*HTMLRenderer, error) {
	logger = logging.OrNop(logger)

	tmpl, err := template.New("html").Funcs(template.FuncMap{
		"percent": percent,
		"link":    ensureScheme,
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse HTML templates", Cause: err}
	}

	return &HTMLRenderer{templates: tmpl, printer: printer, logger: logger}, nil
}

// RenderMarkup executes the variant's template
func (r *HTMLRenderer) RenderMarkup(variant Variant, data TemplateData) (string, error) {
	name, ok := htmlTemplates[variant]
	if !ok {
		return "", &TemplateError{Message: fmt.Sprintf("no HTML template for variant %q", variant)}
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", &TemplateError{Message: fmt.Sprintf("failed to execute %s", name), Cause: err}
	}
	return buf.String(), nil
}

// Render produces PDF bytes for an HTML variant
func (r *HTMLRenderer) Render(ctx context.Context, variant Variant, data TemplateData) ([]byte, error) {
	markup, err := r.RenderMarkup(variant, data)
	if err != nil {
		return nil, err
	}

	if r.printer == nil {
		return nil, &RenderError{Variant: variant, Message: "no HTML printer configured"}
	}

	pdf, err := r.printer.PrintPDF(ctx, markup)
	if err != nil {
		return nil, &RenderError{Variant: variant, Message: "HTML to PDF conversion failed", Diagnostics: err.Error(), Cause: err}
	}
	if err := ValidatePDF(pdf, false); err != nil {
		return nil, &RenderError{Variant: variant, Message: "printer returned an invalid document", Cause: err}
	}

	r.logger.Debug("rendered html variant",
		zap.String("variant", string(variant)),
		zap.Int("bytes", len(pdf)))
	return pdf, nil
}

// percent formats a 0..1 score as a whole percentage
func percent(score float64) string {
	if math.IsNaN(score) {
		score = 0
	}
	score = math.Max(0, math.Min(1, score))
	return fmt.Sprintf("%d%%", int(math.Round(score*100)))
}
