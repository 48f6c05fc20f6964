package analysis

import "fmt"

// ConfigurationError means no model credential is configured.
// It is raised before any network call.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// ModelError represents a failed call to the model provider
type ModelError struct {
	Message string
	Cause   error
}

func (e *ModelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model call failed: %s", e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

// ParseErrorKind distinguishes why a model reply could not be parsed
type ParseErrorKind string

// Parse failure kinds
const (
	// ParseMissingBlock means the reply had no ```json fenced block
	ParseMissingBlock ParseErrorKind = "missing_block"
	// ParseMalformed means the block was present but not a valid analysis document
	ParseMalformed ParseErrorKind = "malformed"
)

// ParseError represents a model reply that was replaced by the fallback result
type ParseError struct {
	Kind  ParseErrorKind
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error (%s): %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("parse error (%s)", e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
