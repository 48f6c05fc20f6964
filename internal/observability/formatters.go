// Package observability provides formatted CLI output and structured failure reporting.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/fastfolio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintOutcomes outputs one line per certificate with its extraction status.
func (p *Printer) PrintOutcomes(outcomes []types.Outcome) {
	if len(outcomes) == 0 {
		return
	}

	var sb strings.Builder
	for _, o := range outcomes {
		switch o.Status {
		case types.OutcomeExtracted:
			sb.WriteString(fmt.Sprintf("✓ %s (%s, %d chars)\n", o.Ref.Path, o.Ref.Type, len(o.Text)))
		case types.OutcomeSkipped:
			sb.WriteString(fmt.Sprintf("- %s (%s) skipped: %s\n", o.Ref.Path, o.Ref.Type, o.Reason))
		default:
			sb.WriteString(fmt.Sprintf("✗ %s (%s) failed: %s\n", o.Ref.Path, o.Ref.Type, o.Reason))
		}
	}

	p.printBox("CERTIFICATE EXTRACTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs a human-readable summary of the analysis and proposed outline.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.2f\n", result.Analysis.Score))

	writeList(&sb, "Strengths", result.Analysis.Strengths)
	writeList(&sb, "Suggestions", result.Analysis.Suggestions)
	writeList(&sb, "Recommendations", result.Analysis.Recommendations)

	if len(result.PortfolioStructure) > 0 {
		sb.WriteString("\nSections:\n")
		for _, section := range result.PortfolioStructure {
			sb.WriteString(fmt.Sprintf("  • %s [%s] (%d items)\n", section.Title, section.Type, len(section.Items)))
		}
	}

	p.printBox("PORTFOLIO ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
