package rendering

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/logging"
)

const (
	// CompilationTimeout is the maximum time to wait for one compiler pass
	CompilationTimeout = 30 * time.Second
	// compilePasses is fixed: the first pass lays out content, the second resolves references
	compilePasses = 2
	latexTemplate = "resume.tex.tmpl"
)

// Compiler runs one compiler pass over texPath, writing output into workDir
type Compiler interface {
	Compile(ctx context.Context, workDir, texPath string) (logOutput string, err error)
}

// PDFLaTeX invokes a pdflatex-compatible binary
type PDFLaTeX struct {
	Binary  string
	Timeout time.Duration
}

// NewPDFLaTeX creates a compiler for binary (pdflatex when empty)
func NewPDFLaTeX(binary string) *PDFLaTeX {
	if binary == "" {
		binary = "pdflatex"
	}
	return &PDFLaTeX{Binary: binary, Timeout: CompilationTimeout}
}

// Available reports whether the compiler is on PATH
func (c *PDFLaTeX) Available() bool {
	_, err := exec.LookPath(c.Binary)
	return err == nil
}

// Compile runs the binary once in non-interactive mode
func (c *PDFLaTeX) Compile(ctx context.Context, workDir, texPath string) (string, error) {
	if _, err := exec.LookPath(c.Binary); err != nil {
		return "", &CompilationError{
			Message: fmt.Sprintf("%s not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)", c.Binary),
			Cause:   err,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Binary,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", workDir,
		texPath)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	logOutput := stdout.String() + stderr.String()
	if runErr != nil {
		return logOutput, &CompilationError{
			Message:   "LaTeX compilation failed",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}
	return logOutput, nil
}

// LaTeXRenderer renders the latex variant with a fixed two-pass compile in a
// per-call scratch directory that is always removed.
type LaTeXRenderer struct {
	template    *template.Template
	compiler    Compiler
	scratchRoot string
	logger      *zap.Logger
}

// NewLaTeXRenderer parses the embedded LaTeX template. An empty scratchRoot
// uses the system temp directory.
func NewLaTeXRenderer(compiler Compiler, scratchRoot string, logger *zap.Logger) (*LaTeXRenderer, error) {
	logger = logging.OrNop(logger)

	tmpl, err := template.New(latexTemplate).
		Delims("<<", ">>").
		Funcs(template.FuncMap{
			"escape": EscapeLaTeX,
			"inline": EscapeLaTeXInline,
			"url":    EscapeURL,
			"link":   ensureScheme,
		}).
		ParseFS(templateFS, "templates/"+latexTemplate)
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse LaTeX template", Cause: err}
	}

	return &LaTeXRenderer{
		template:    tmpl,
		compiler:    compiler,
		scratchRoot: scratchRoot,
		logger:      logger,
	}, nil
}

// RenderSource executes the template into LaTeX source
func (r *LaTeXRenderer) RenderSource(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := r.template.ExecuteTemplate(&buf, latexTemplate, data); err != nil {
		return "", &TemplateError{Message: "failed to execute LaTeX template", Cause: err}
	}
	return buf.String(), nil
}

// Render compiles the source twice and returns the produced PDF bytes
func (r *LaTeXRenderer) Render(ctx context.Context, data TemplateData) ([]byte, error) {
	source, err := r.RenderSource(data)
	if err != nil {
		return nil, err
	}
	if r.compiler == nil {
		return nil, &RenderError{Variant: VariantLaTeX, Message: "no LaTeX compiler configured"}
	}

	workDir, err := os.MkdirTemp(r.scratchRoot, "fastfolio-latex-")
	if err != nil {
		return nil, &RenderError{Variant: VariantLaTeX, Message: "failed to create scratch directory", Cause: err}
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			r.logger.Warn("failed to remove scratch directory", zap.String("path", workDir), zap.Error(err))
		}
	}()

	id := uuid.NewString()
	texPath := filepath.Join(workDir, id+"_resume.tex")
	pdfPath := filepath.Join(workDir, id+"_resume.pdf")

	if err := os.WriteFile(texPath, []byte(source), 0o600); err != nil {
		return nil, &RenderError{Variant: VariantLaTeX, Message: "failed to write LaTeX source", Cause: err}
	}

	start := time.Now()
	for pass := 1; pass <= compilePasses; pass++ {
		logOutput, err := r.compiler.Compile(ctx, workDir, texPath)
		if err != nil {
			if ce, ok := err.(*CompilationError); ok {
				ce.Pass = pass
			}
			return nil, &RenderError{
				Variant:     VariantLaTeX,
				Message:     fmt.Sprintf("compiler failed on pass %d", pass),
				Diagnostics: logOutput,
				Cause:       err,
			}
		}
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, &RenderError{Variant: VariantLaTeX, Message: "compiler produced no PDF", Cause: err}
	}
	if err := ValidatePDF(pdf, true); err != nil {
		return nil, &RenderError{Variant: VariantLaTeX, Message: "compiler produced an invalid document", Cause: err}
	}

	r.logger.Debug("rendered latex variant",
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))
	return pdf, nil
}
