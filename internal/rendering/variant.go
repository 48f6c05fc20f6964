package rendering

import "github.com/jonathan/fastfolio/internal/types"

// Variant selects the output document configuration
type Variant string

// Render variants
const (
	VariantStandard Variant = "standard"
	VariantAnalysis Variant = "analysis"
	VariantATS      Variant = "ats"
	VariantLaTeX    Variant = "latex"
)

// Variants lists every variant in a stable order
var Variants = []Variant{VariantStandard, VariantAnalysis, VariantATS, VariantLaTeX}

// TemplateData is the flattened field set bound into a template.
// Nil fields are not bound for the variant.
type TemplateData struct {
	Contact            *types.ContactFields
	Analysis           *types.Analysis
	PortfolioStructure []types.Section
}

// Bind selects the fields a variant may see. Contact data always comes from
// the profile. The analysis variant binds only the analysis, ats omits it,
// standard binds both, latex binds contact and structure.
func Bind(variant Variant, profile *types.StudentProfile, result *types.AnalysisResult) TemplateData {
	var normalized types.AnalysisResult
	if result != nil {
		normalized = result.Normalize()
	} else {
		normalized = types.AnalysisResult{}.Normalize()
	}

	var contact *types.ContactFields
	if profile != nil {
		c := profile.ContactFields()
		contact = &c
	}

	switch variant {
	case VariantAnalysis:
		return TemplateData{Analysis: &normalized.Analysis}
	case VariantATS, VariantLaTeX:
		return TemplateData{Contact: contact, PortfolioStructure: normalized.PortfolioStructure}
	default:
		return TemplateData{Contact: contact, Analysis: &normalized.Analysis, PortfolioStructure: normalized.PortfolioStructure}
	}
}
