package rendering

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonathan/fastfolio/internal/types"
)

// minimalPDF builds a one-page PDF with a correct xref table
func minimalPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// fakePrinter records the markup it is given
type fakePrinter struct {
	mu     sync.Mutex
	markup []string
	out    []byte
	err    error
}

func (p *fakePrinter) PrintPDF(_ context.Context, html string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.markup = append(p.markup, html)
	if p.err != nil {
		return nil, p.err
	}
	if p.out != nil {
		return p.out, nil
	}
	return []byte("%PDF-1.4\n% fake\n"), nil
}

// fakeCompiler simulates pdflatex by writing a PDF next to the source
type fakeCompiler struct {
	mu       sync.Mutex
	calls    int
	failOn   int
	log      string
	writePDF bool
	sources  []string
	workDirs []string
}

func (c *fakeCompiler) Compile(_ context.Context, workDir, texPath string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.workDirs = append(c.workDirs, workDir)

	src, err := os.ReadFile(texPath)
	if err != nil {
		return "", err
	}
	c.sources = append(c.sources, string(src))

	if c.failOn == c.calls {
		return c.log, &CompilationError{Message: "LaTeX compilation failed", LogOutput: c.log}
	}
	if c.writePDF {
		pdfPath := filepath.Join(workDir, strings.TrimSuffix(filepath.Base(texPath), ".tex")+".pdf")
		if err := os.WriteFile(pdfPath, minimalPDF(), 0o600); err != nil {
			return "", err
		}
	}
	return c.log, nil
}

func testProfile() *types.StudentProfile {
	return &types.StudentProfile{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "+44 20 0000 0000",
		LinkedIn: "linkedin.com/in/ada",
		GitHub:   "https://github.com/ada",
	}
}

func testResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		Analysis: types.Analysis{
			Score:           0.82,
			Strengths:       []string{"Strong math background"},
			Suggestions:     []string{"Add measurable outcomes"},
			Recommendations: []string{"Apply to research internships"},
		},
		PortfolioStructure: []types.Section{
			{Title: "Projects", Type: types.SectionGrid, Items: []string{"Analytical Engine notes", "Bernoulli numbers"}},
			{Title: "Skills", Type: types.SectionList, Items: []string{"Mathematics", "R&D 100%"}},
		},
	}
}
