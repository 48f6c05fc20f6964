package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/fastfolio/internal/pipeline"
	"github.com/jonathan/fastfolio/internal/types"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string          `json:"status"`
	OCR    bool            `json:"ocr"`
	Checks map[string]bool `json:"checks"`
}

// handleGenerate returns the handler for one generation mode
func (s *Server) handleGenerate(def pipeline.ModeDefinition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.decodeProfile(w, r)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}

		artifact, err := s.runner.Run(r.Context(), def.Name, profile)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}

		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Bytes)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(artifact.Bytes)
	}
}

// decodeProfile reads the JSON profile and confines certificate paths to the upload directory
func (s *Server) decodeProfile(w http.ResponseWriter, r *http.Request) (*types.StudentProfile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var profile types.StudentProfile
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&profile); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, &ErrUploadTooLarge{Limit: s.maxBodyBytes}
		}
		if errors.Is(err, io.EOF) {
			return nil, &ErrValidation{Message: "request body is empty"}
		}
		return nil, &ErrValidation{Message: "invalid JSON body: " + err.Error()}
	}

	for i, cert := range profile.Certificates {
		if !s.inUploadDir(cert.Path) {
			return nil, &ErrValidation{
				Field:   fmt.Sprintf("certificates[%d].path", i),
				Message: "path must refer to a file returned by /uploads",
			}
		}
	}
	return &profile, nil
}

func (s *Server) inUploadDir(path string) bool {
	root, err := filepath.Abs(s.uploads.dir)
	if err != nil {
		return false
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
}

// handleUpload saves multipart certificate files
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	refs, err := s.uploads.Save(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, UploadResponse{Certificates: refs})
}

// handleHealth reports liveness and toolchain availability
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	checks := s.capabilities()
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status: "ok",
		OCR:    checks[pipeline.CapabilityOCR],
		Checks: checks,
	})
}
