package extraction

import "fmt"

// UnavailableError means a host tool required for a format is missing.
// It is an environment precondition, not a problem with the file.
type UnavailableError struct {
	Binary  string
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s unavailable: %s: %v", e.Binary, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s unavailable: %s", e.Binary, e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// FormatError means a file could not be read as its declared type
type FormatError struct {
	Path    string
	Format  string
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Format, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Format, e.Path, e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
