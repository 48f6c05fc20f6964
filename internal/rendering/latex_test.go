package rendering

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fastfolio/internal/types"
)

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch directory must be removed")
}

func TestLaTeXRenderer_RenderSource(t *testing.T) {
	r, err := NewLaTeXRenderer(&fakeCompiler{}, t.TempDir(), nil)
	require.NoError(t, err)

	src, err := r.RenderSource(Bind(VariantLaTeX, testProfile(), testResult()))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(src, `\documentclass`))
	assert.Contains(t, src, `{\LARGE\bfseries Ada Lovelace}`)
	assert.Contains(t, src, `\href{https://linkedin.com/in/ada}{linkedin.com/in/ada}`)
	assert.Contains(t, src, `\section*{Projects}`)
	assert.Contains(t, src, `\item R\&D 100\%`)
	assert.NotContains(t, src, "Add measurable outcomes", "latex variant does not bind analysis")
	assert.Equal(t, 2, strings.Count(src, `\section*{`))
}

func TestLaTeXRenderer_RenderSourceEscapesProfile(t *testing.T) {
	profile := testProfile()
	profile.Name = "Jo_Doe & Co #1"

	r, err := NewLaTeXRenderer(&fakeCompiler{}, t.TempDir(), nil)
	require.NoError(t, err)

	src, err := r.RenderSource(Bind(VariantLaTeX, profile, nil))
	require.NoError(t, err)
	assert.Contains(t, src, `Jo\_Doe \& Co \#1`)
}

func TestLaTeXRenderer_RenderSourceLineBreaks(t *testing.T) {
	result := &types.AnalysisResult{
		PortfolioStructure: []types.Section{
			{Title: "Research\nExperience", Type: types.SectionList, Items: []string{
				"\nLed the robotics team",
				"First line\n\nSecond line\n",
			}},
		},
	}

	r, err := NewLaTeXRenderer(&fakeCompiler{}, t.TempDir(), nil)
	require.NoError(t, err)

	src, err := r.RenderSource(Bind(VariantLaTeX, testProfile(), result))
	require.NoError(t, err)

	assert.Contains(t, src, `\section*{Research Experience}`)
	assert.Contains(t, src, `\item Led the robotics team`)
	assert.Contains(t, src, `\item First line\\ Second line`)
	assert.NotContains(t, src, `\item \\`)
}

func TestLaTeXRenderer_TwoPasses(t *testing.T) {
	scratch := t.TempDir()
	compiler := &fakeCompiler{writePDF: true}
	r, err := NewLaTeXRenderer(compiler, scratch, nil)
	require.NoError(t, err)

	out, err := r.Render(context.Background(), Bind(VariantLaTeX, testProfile(), testResult()))
	require.NoError(t, err)

	assert.Equal(t, 2, compiler.calls)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))
	require.Len(t, compiler.workDirs, 2)
	assert.Equal(t, compiler.workDirs[0], compiler.workDirs[1])
	assert.Equal(t, compiler.sources[0], compiler.sources[1])
	assertEmptyDir(t, scratch)
}

func TestLaTeXRenderer_FailureOnFirstPass(t *testing.T) {
	scratch := t.TempDir()
	compiler := &fakeCompiler{failOn: 1, log: "! Undefined control sequence."}
	r, err := NewLaTeXRenderer(compiler, scratch, nil)
	require.NoError(t, err)

	out, err := r.Render(context.Background(), Bind(VariantLaTeX, testProfile(), testResult()))
	assert.Nil(t, out)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, VariantLaTeX, renderErr.Variant)
	assert.Contains(t, renderErr.Diagnostics, "Undefined control sequence")

	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, 1, compErr.Pass)

	assert.Equal(t, 1, compiler.calls)
	assertEmptyDir(t, scratch)
}

func TestLaTeXRenderer_FailureOnSecondPass(t *testing.T) {
	scratch := t.TempDir()
	compiler := &fakeCompiler{failOn: 2, writePDF: true, log: "! Emergency stop."}
	r, err := NewLaTeXRenderer(compiler, scratch, nil)
	require.NoError(t, err)

	out, err := r.Render(context.Background(), Bind(VariantLaTeX, testProfile(), testResult()))
	assert.Nil(t, out, "no partial bytes after a failed pass")

	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, 2, compErr.Pass)
	assertEmptyDir(t, scratch)
}

func TestLaTeXRenderer_NoOutputProduced(t *testing.T) {
	scratch := t.TempDir()
	compiler := &fakeCompiler{}
	r, err := NewLaTeXRenderer(compiler, scratch, nil)
	require.NoError(t, err)

	out, err := r.Render(context.Background(), Bind(VariantLaTeX, testProfile(), nil))
	assert.Nil(t, out)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
	assert.Equal(t, 2, compiler.calls)
	assertEmptyDir(t, scratch)
}

func TestLaTeXRenderer_EmptyStructure(t *testing.T) {
	compiler := &fakeCompiler{writePDF: true}
	r, err := NewLaTeXRenderer(compiler, t.TempDir(), nil)
	require.NoError(t, err)

	out, err := r.Render(context.Background(), Bind(VariantLaTeX, testProfile(), &types.AnalysisResult{}))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.NotContains(t, compiler.sources[0], `\section*{`)
}

func TestPDFLaTeX_MissingBinary(t *testing.T) {
	c := NewPDFLaTeX("definitely-not-a-latex-binary")
	assert.False(t, c.Available())

	_, err := c.Compile(context.Background(), t.TempDir(), "missing.tex")
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
	assert.Contains(t, compErr.Message, "not found in PATH")
}

func TestPDFLaTeX_DefaultBinary(t *testing.T) {
	assert.Equal(t, "pdflatex", NewPDFLaTeX("").Binary)
	assert.Equal(t, CompilationTimeout, NewPDFLaTeX("").Timeout)
}
