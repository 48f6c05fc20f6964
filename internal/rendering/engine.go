package rendering

import (
	"context"
	"fmt"

	"github.com/jonathan/fastfolio/internal/types"
)

// Engine dispatches a render request to the HTML or LaTeX renderer
type Engine struct {
	html  *HTMLRenderer
	latex *LaTeXRenderer
}

// NewEngine creates an engine over the two renderers
func NewEngine(html *HTMLRenderer, latex *LaTeXRenderer) *Engine {
	return &Engine{html: html, latex: latex}
}

// Render binds the variant's fields and produces PDF bytes.
// It never returns partial bytes: on failure the slice is nil.
func (e *Engine) Render(ctx context.Context, variant Variant, profile *types.StudentProfile, result *types.AnalysisResult) ([]byte, error) {
	data := Bind(variant, profile, result)

	switch variant {
	case VariantStandard, VariantAnalysis, VariantATS:
		if e.html == nil {
			return nil, &RenderError{Variant: variant, Message: "HTML renderer not configured"}
		}
		return e.html.Render(ctx, variant, data)
	case VariantLaTeX:
		if e.latex == nil {
			return nil, &RenderError{Variant: variant, Message: "LaTeX renderer not configured"}
		}
		return e.latex.Render(ctx, data)
	default:
		return nil, &TemplateError{Message: fmt.Sprintf("unknown render variant %q", variant)}
	}
}
