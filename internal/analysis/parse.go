package analysis

import (
	"encoding/json"

	"github.com/jonathan/fastfolio/internal/llm"
	"github.com/jonathan/fastfolio/internal/schemas"
	"github.com/jonathan/fastfolio/internal/types"
)

// Diagnostic suggestions placed in the fallback result
const (
	MissingBlockSuggestion = "Could not parse the model's response. The model did not return valid JSON."
	MalformedSuggestion    = "Could not parse the model's response. Invalid JSON format."
)

// ParseResponse extracts the analysis from a raw model reply.
// It always returns a usable result: when the reply cannot be parsed the
// deterministic fallback is returned together with a *ParseError.
// Contact sections are removed in both cases.
func ParseResponse(reply string) (*types.AnalysisResult, error) {
	block, ok := llm.ExtractFencedJSON(reply)
	if !ok {
		return Fallback(ParseMissingBlock), &ParseError{Kind: ParseMissingBlock}
	}

	if err := schemas.ValidateAnalysis(block); err != nil {
		return Fallback(ParseMalformed), &ParseError{Kind: ParseMalformed, Cause: err}
	}

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return Fallback(ParseMalformed), &ParseError{Kind: ParseMalformed, Cause: err}
	}

	result.PortfolioStructure = types.FilterContactSections(result.PortfolioStructure)
	normalized := result.Normalize()
	return &normalized, nil
}

// Fallback returns the deterministic result used when the reply cannot be parsed
func Fallback(kind ParseErrorKind) *types.AnalysisResult {
	suggestion := MalformedSuggestion
	if kind == ParseMissingBlock {
		suggestion = MissingBlockSuggestion
	}

	return &types.AnalysisResult{
		Analysis: types.Analysis{
			Score:           0.0,
			Suggestions:     []string{suggestion},
			Strengths:       []string{},
			Recommendations: []string{},
		},
		PortfolioStructure: types.FilterContactSections(nil),
	}
}
