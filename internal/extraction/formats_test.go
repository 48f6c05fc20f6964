package extraction

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDOCX builds a minimal word-processing archive with one run per paragraph
func writeDOCX(t *testing.T, name string, paragraphs []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create(docxBody)
	require.NoError(t, err)

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, p)
	}
	body.WriteString(`</w:body></w:document>`)

	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExtractDOCX_ParagraphOrder(t *testing.T) {
	path := writeDOCX(t, "cert.docx", []string{"Bachelor of Science", "", "GPA 3.9"})

	text, err := ExtractDOCX(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Bachelor of Science\n\nGPA 3.9", text)
}

func TestDocxParagraphs_RunsTabsAndBreaks(t *testing.T) {
	xmlBody := `<w:document xmlns:w="w"><w:body>` +
		`<w:p><w:r><w:t>Course</w:t></w:r><w:r><w:tab/><w:t>Grade</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	paragraphs, err := docxParagraphs(strings.NewReader(xmlBody))
	require.NoError(t, err)
	assert.Equal(t, []string{"Course\tGrade", "Line one\nLine two"}, paragraphs)
}

func TestExtractDOCX_NotAnArchive(t *testing.T) {
	path := writeTemp(t, "fake.docx", "plain text, not zip")

	_, err := ExtractDOCX(context.Background(), path)
	require.Error(t, err)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "doc", formatErr.Format)
}

func TestExtractDOCX_MissingBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ExtractDOCX(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml not found")
}

func TestExtractPDF_Corrupt(t *testing.T) {
	path := writeTemp(t, "corrupt.pdf", "%PDF-1.4\nthis is not really a pdf")

	_, err := ExtractPDF(context.Background(), path)
	require.Error(t, err)
}

func TestExtractText(t *testing.T) {
	path := writeTemp(t, "notes.txt", "Line 1\nLine 2\n")

	text, err := ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Line 1\nLine 2\n", text)
}

func TestExtractText_InvalidUTF8(t *testing.T) {
	path := writeTemp(t, "latin1.txt", "caf\xe9")

	text, err := ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "caf\uFFFD", text)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "crlf", input: "a\r\nb", want: "a\nb"},
		{name: "space runs", input: "  Data   Science \t Cert  ", want: "Data Science Cert"},
		{name: "blank lines", input: "a\n\n\n\n\nb", want: "a\n\nb"},
		{name: "form feed", input: "page one\fpage two", want: "page one\npage two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestOCR_UndecodableImage(t *testing.T) {
	ocr := NewOCR("")
	if !ocr.Available() {
		t.Skip("tesseract not installed")
	}

	path := writeTemp(t, "scan.png", "not an image")
	_, err := ocr.Extract(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}
