package extraction

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// ExtractDOCX returns the document's paragraphs in order, joined by newlines
func ExtractDOCX(_ context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", &FormatError{Path: path, Format: "doc", Message: "not a word-processing archive", Cause: err}
	}
	defer func() { _ = zr.Close() }()

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return "", &FormatError{Path: path, Format: "doc", Message: docxBody + " not found"}
	}

	rc, err := body.Open()
	if err != nil {
		return "", &FormatError{Path: path, Format: "doc", Message: "failed to open body", Cause: err}
	}
	defer func() { _ = rc.Close() }()

	paragraphs, err := docxParagraphs(rc)
	if err != nil {
		return "", &FormatError{Path: path, Format: "doc", Message: "malformed body", Cause: err}
	}
	return strings.Join(paragraphs, "\n"), nil
}

// docxParagraphs walks <w:p> elements, collecting <w:t> runs and mapping
// <w:tab> and <w:br> to whitespace.
func docxParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				var text string
				if err := decoder.DecodeElement(&text, &el); err != nil {
					return nil, err
				}
				current.WriteString(text)
			case "tab":
				current.WriteString("\t")
			case "br", "cr":
				current.WriteString("\n")
			}
		case xml.EndElement:
			if el.Name.Local == "p" && depth > 0 {
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			}
		}
	}
	return paragraphs, nil
}
