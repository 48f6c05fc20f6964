// Package rendering turns a profile and an AnalysisResult into one of the PDF variants.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing a template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a toolchain or I/O failure while producing PDF bytes.
// Diagnostics carries the compiler or printer output when available.
type RenderError struct {
	Variant     Variant
	Message     string
	Diagnostics string
	Cause       error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("render error (%s): %s", e.Variant, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// CompilationError represents a non-zero exit from the LaTeX compiler
type CompilationError struct {
	Pass      int
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compilation error (pass %d): %s: %v", e.Pass, e.Message, e.Cause)
	}
	return fmt.Sprintf("compilation error (pass %d): %s", e.Pass, e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}
