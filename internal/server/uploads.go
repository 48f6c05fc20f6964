package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/logging"
	"github.com/jonathan/fastfolio/internal/types"
)

// uploadField is the multipart field carrying certificate files
const uploadField = "certificates"

// multipartOverhead allows for boundaries and part headers on top of the file cap
const multipartOverhead = 1 << 20

// extensionTypes maps lower-case file extensions to certificate types
var extensionTypes = map[string]types.CertificateType{
	"pdf":  types.CertificatePDF,
	"doc":  types.CertificateDoc,
	"docx": types.CertificateDoc,
	"png":  types.CertificateImage,
	"jpg":  types.CertificateImage,
	"jpeg": types.CertificateImage,
	"gif":  types.CertificateImage,
	"bmp":  types.CertificateImage,
	"tiff": types.CertificateImage,
	"tif":  types.CertificateImage,
	"webp": types.CertificateImage,
	"txt":  types.CertificateText,
}

// UploadResponse lists the saved certificates for use in a generation request
type UploadResponse struct {
	Certificates []types.CertificateRef `json:"certificates"`
}

// UploadStore saves certificate uploads under a directory with a shared size cap
type UploadStore struct {
	dir      string
	maxBytes int64
	logger   *zap.Logger
}

// NewUploadStore creates a store rooted at dir
func NewUploadStore(dir string, maxBytes int64, logger *zap.Logger) *UploadStore {
	logger = logging.OrNop(logger)
	return &UploadStore{dir: dir, maxBytes: maxBytes, logger: logger}
}

// CertificateType derives the declared type from a file name. Unknown
// extensions are returned as-is so the pipeline skips them.
func CertificateType(filename string) types.CertificateType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return types.CertificateType(ext)
}

// SanitizeFilename keeps only the base name and the characters [A-Za-z0-9._-]
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	clean := strings.TrimLeft(b.String(), ".")
	if clean == "" {
		return "file"
	}
	return clean
}

// Save streams every certificate part to disk. On any failure the files saved
// by this call are removed.
func (s *UploadStore) Save(w http.ResponseWriter, r *http.Request) (refs []types.CertificateRef, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes+multipartOverhead)

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, &ErrValidation{Field: uploadField, Message: "expected a multipart/form-data body"}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	var saved []string
	defer func() {
		if err == nil {
			return
		}
		for _, path := range saved {
			if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				s.logger.Warn("failed to remove partial upload", zap.String("path", path), zap.Error(rmErr))
			}
		}
	}()

	remaining := s.maxBytes
	for {
		part, perr := reader.NextPart()
		if perr == io.EOF {
			break
		}
		if perr != nil {
			return nil, &ErrValidation{Field: uploadField, Message: "malformed multipart body"}
		}
		if part.FormName() != uploadField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		name := SanitizeFilename(part.FileName())
		path := filepath.Join(s.dir, uuid.NewString()+"_"+name)
		saved = append(saved, path)

		n, werr := s.writePart(path, part, remaining)
		_ = part.Close()
		if werr != nil {
			return nil, werr
		}
		remaining -= n

		refs = append(refs, types.CertificateRef{Path: path, Type: CertificateType(name)})
		s.logger.Debug("saved upload",
			zap.String("path", path),
			zap.String("type", string(CertificateType(name))),
			zap.Int64("bytes", n))
	}

	if len(refs) == 0 {
		return nil, &ErrValidation{Field: uploadField, Message: "no files uploaded"}
	}
	return refs, nil
}

// writePart copies at most remaining bytes; one byte more means the cap is exceeded
func (s *UploadStore) writePart(path string, part *multipart.Part, remaining int64) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(part, remaining+1))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return n, &ErrUploadTooLarge{Limit: s.maxBytes}
		}
		return n, fmt.Errorf("failed to write upload: %w", err)
	}
	if n > remaining {
		return n, &ErrUploadTooLarge{Limit: s.maxBytes}
	}
	return n, nil
}
