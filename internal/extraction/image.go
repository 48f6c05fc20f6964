package extraction

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"

	// Decoders accepted as OCR input
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultOCRBinary is the tesseract executable looked up on PATH
const DefaultOCRBinary = "tesseract"

// OCR runs tesseract against decoded images
type OCR struct {
	binary string
}

// NewOCR creates an OCR runner for binary (DefaultOCRBinary when empty)
func NewOCR(binary string) *OCR {
	if binary == "" {
		binary = DefaultOCRBinary
	}
	return &OCR{binary: binary}
}

// Available reports whether the OCR binary is on PATH
func (o *OCR) Available() bool {
	_, err := exec.LookPath(o.binary)
	return err == nil
}

// Extract decodes the image at path and returns the recognized text.
// A missing binary yields *UnavailableError before the file is touched.
func (o *OCR) Extract(ctx context.Context, path string) (string, error) {
	bin, err := exec.LookPath(o.binary)
	if err != nil {
		return "", &UnavailableError{
			Binary:  o.binary,
			Message: "OCR binary is not installed or not in PATH",
			Cause:   err,
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &FormatError{Path: path, Format: "image", Message: "failed to open", Cause: err}
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return "", &FormatError{Path: path, Format: "image", Message: "failed to decode", Cause: err}
	}

	// tesseract reads PNG from stdin regardless of the source format
	var input bytes.Buffer
	if err := png.Encode(&input, img); err != nil {
		return "", &FormatError{Path: path, Format: "image", Message: fmt.Sprintf("failed to re-encode %s", format), Cause: err}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "stdin", "stdout")
	cmd.Stdin = &input
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &FormatError{
			Path:    path,
			Format:  "image",
			Message: fmt.Sprintf("OCR failed: %s", bytes.TrimSpace(stderr.Bytes())),
			Cause:   err,
		}
	}

	return CleanText(stdout.String()), nil
}
