//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// contactSectionTitle is compared case-insensitively against model section titles
const contactSectionTitle = "contact information"

// SectionType controls how a portfolio section is laid out
type SectionType string

// Section layouts accepted from the model
const (
	SectionList SectionType = "list"
	SectionGrid SectionType = "grid"
)

// Section is one titled block of the proposed document outline
type Section struct {
	Title string      `json:"section_title"`
	Type  SectionType `json:"section_type"`
	Items []string    `json:"section_items"`
}

// Analysis is the model's assessment of the profile
type Analysis struct {
	Score           float64  `json:"score"`
	Suggestions     []string `json:"suggestions"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
}

// AnalysisResult is the structured reply of the analysis engine.
// It is built once per request and not mutated after construction.
type AnalysisResult struct {
	Analysis           Analysis  `json:"analysis"`
	PortfolioStructure []Section `json:"portfolio_structure"`
}

// FilterContactSections drops sections titled "Contact Information" (any case).
// Contact details are rendered from the profile, so model-produced contact sections are discarded.
// The input slice is not modified; the result is never nil.
func FilterContactSections(sections []Section) []Section {
	filtered := make([]Section, 0, len(sections))
	for _, section := range sections {
		if strings.ToLower(section.Title) == contactSectionTitle {
			continue
		}
		filtered = append(filtered, section)
	}
	return filtered
}

// Normalize returns a copy with nil slices replaced by empty ones so templates and
// JSON encoding see [] instead of null.
func (r AnalysisResult) Normalize() AnalysisResult {
	out := AnalysisResult{
		Analysis: Analysis{
			Score:           r.Analysis.Score,
			Suggestions:     nonNil(r.Analysis.Suggestions),
			Strengths:       nonNil(r.Analysis.Strengths),
			Recommendations: nonNil(r.Analysis.Recommendations),
		},
		PortfolioStructure: make([]Section, 0, len(r.PortfolioStructure)),
	}
	for _, s := range r.PortfolioStructure {
		out.PortfolioStructure = append(out.PortfolioStructure, Section{
			Title: s.Title,
			Type:  s.Type,
			Items: nonNil(s.Items),
		})
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
