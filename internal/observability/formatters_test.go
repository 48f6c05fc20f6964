package observability

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jonathan/fastfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.AnalysisResult{
		Analysis: types.Analysis{
			Score:       0.72,
			Strengths:   []string{"Strong Go skills"},
			Suggestions: []string{"Add metrics", "a", "b", "c", "d", "e"},
		},
		PortfolioStructure: []types.Section{
			{Title: "Projects", Type: types.SectionGrid, Items: []string{"x", "y"}},
		},
	}

	p.PrintAnalysis(result)
	output := buf.String()

	assert.Contains(t, output, "PORTFOLIO ANALYSIS")
	assert.Contains(t, output, "Score: 0.72")
	assert.Contains(t, output, "Strong Go skills")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "Projects [grid] (2 items)")
	assert.NotContains(t, output, "Recommendations")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil)

	assert.Empty(t, buf.String())
}

func TestPrintOutcomes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOutcomes([]types.Outcome{
		{Ref: types.CertificateRef{Path: "a.txt", Type: "txt"}, Status: types.OutcomeExtracted, Text: "hello"},
		{Ref: types.CertificateRef{Path: "b.xyz", Type: "xyz"}, Status: types.OutcomeSkipped, Reason: "unsupported type"},
		{Ref: types.CertificateRef{Path: "c.pdf", Type: "pdf"}, Status: types.OutcomeFailed, Reason: "corrupt"},
	})
	output := buf.String()

	assert.Contains(t, output, "CERTIFICATE EXTRACTION")
	assert.Contains(t, output, "a.txt (txt, 5 chars)")
	assert.Contains(t, output, "skipped: unsupported type")
	assert.Contains(t, output, "failed: corrupt")
}

func TestLogReporter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reporter := NewLogReporter(zap.New(core))

	reporter.Report(Failure{Stage: StageExtraction, Path: "a.pdf", Kind: "pdf", Cause: errors.New("bad xref")})
	reporter.Report(Failure{Stage: StageExtraction, Path: "old.doc", Advisory: true})

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "extraction", fields["stage"])
	assert.Equal(t, "a.pdf", fields["path"])
	assert.Equal(t, "bad xref", fields["error"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "error")
}
