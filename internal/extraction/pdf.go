package extraction

import (
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF concatenates the plain text of every page in page order.
// Only the embedded text layer is read; scanned pages yield no text.
func ExtractPDF(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &FormatError{Path: path, Format: "pdf", Message: "failed to open", Cause: err}
	}
	defer func() { _ = f.Close() }()

	fonts := make(map[string]*pdf.Font)
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			return "", &FormatError{Path: path, Format: "pdf", Message: "failed to read page", Cause: err}
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}
