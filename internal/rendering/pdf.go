package rendering

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// ValidatePDF checks that data looks like a complete PDF. With countPages it
// also parses the document and requires at least one page.
func ValidatePDF(data []byte, countPages bool) (err error) {
	if len(data) == 0 {
		return errors.New("empty document")
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return errors.New("missing %PDF- header")
	}
	if !countPages {
		return nil
	}

	// The parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unreadable document: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("unreadable document: %w", err)
	}
	if reader.NumPage() < 1 {
		return errors.New("document has no pages")
	}
	return nil
}
