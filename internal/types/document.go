//nolint:revive // types is a standard Go package name pattern
package types

// ExtractedDocument is the plain-text payload extracted from one certificate
type ExtractedDocument struct {
	Path    string          `json:"path"`
	Type    CertificateType `json:"type"`
	Content string          `json:"content"`
}

// OutcomeStatus tags the result of extracting a single certificate
type OutcomeStatus string

// Outcome statuses
const (
	// OutcomeExtracted means text was read (possibly empty)
	OutcomeExtracted OutcomeStatus = "extracted"
	// OutcomeSkipped means the type tag is not recognized; no extraction was attempted
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeFailed means extraction was attempted and raised
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome records what happened to one certificate during extraction
type Outcome struct {
	Ref    CertificateRef `json:"ref"`
	Status OutcomeStatus  `json:"status"`
	Text   string         `json:"text,omitempty"`
	Reason string         `json:"reason,omitempty"`
	Err    error          `json:"-"`
}

// Document converts the outcome to the document handed to analysis.
// Extracted outcomes carry their text, skipped outcomes are kept with empty
// content, and failed outcomes produce no document.
func (o Outcome) Document() (ExtractedDocument, bool) {
	switch o.Status {
	case OutcomeExtracted:
		return ExtractedDocument{Path: o.Ref.Path, Type: o.Ref.Type, Content: o.Text}, true
	case OutcomeSkipped:
		return ExtractedDocument{Path: o.Ref.Path, Type: o.Ref.Type, Content: ""}, true
	default:
		return ExtractedDocument{}, false
	}
}

// Documents flattens outcomes into documents, preserving input order
func Documents(outcomes []Outcome) []ExtractedDocument {
	docs := make([]ExtractedDocument, 0, len(outcomes))
	for _, o := range outcomes {
		if doc, ok := o.Document(); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}
